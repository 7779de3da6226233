package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Mutombe/propdesk/internal/domain/lease"
)

// UploadLeaseDocument attaches a document to a lease. The file is sent as a
// multipart form with a single binary field named "document".
func (c *Client) UploadLeaseDocument(ctx context.Context, id, filename string, document io.Reader) (*lease.Lease, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("document", filename)
	if err != nil {
		return nil, fmt.Errorf("multipart form: %w", err)
	}
	if _, err := io.Copy(part, document); err != nil {
		return nil, fmt.Errorf("copy document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart form: %w", err)
	}

	call := func() ([]byte, error) {
		req, err := c.newRequest(ctx, http.MethodPost, "/api/leases/"+id+"/document", nil, bytes.NewReader(buf.Bytes()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return c.send(req)
	}

	data, err := c.executeRaw(call)
	if err != nil {
		return nil, fmt.Errorf("upload lease document: %w", err)
	}

	var l lease.Lease
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode lease: %w", err)
	}
	return &l, nil
}

// DownloadImportTemplate fetches the import spreadsheet template for a
// resource as a binary blob. The caller saves it under
// import_template_<resource>.xlsx.
func (c *Client) DownloadImportTemplate(ctx context.Context, resource string) ([]byte, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/import-templates/"+resource, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("download template %s: %w", resource, err)
	}
	return data, nil
}

// executeRaw routes a prepared call through the breaker when one is attached.
func (c *Client) executeRaw(call func() ([]byte, error)) ([]byte, error) {
	if c.breaker == nil {
		return call()
	}
	var data []byte
	err := c.breaker.Execute(func() error {
		var callErr error
		data, callErr = call()
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
