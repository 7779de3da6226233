package service

import (
	"context"
	"testing"
	"time"

	"github.com/Mutombe/propdesk/internal/domain/landlord"
	"github.com/Mutombe/propdesk/internal/domain/property"
	"github.com/Mutombe/propdesk/internal/query"
)

func TestLandlordDetailAggregatesPortfolio(t *testing.T) {
	api := newFakeAPI()
	api.landlords = []landlord.Landlord{{ID: "ll-1", Name: "Acme Holdings", CommissionRate: 10}}
	api.properties = []property.Property{
		{ID: "p1", Landlord: "ll-1", PropertyType: property.TypeResidential, UnitCount: 10, VacancyRate: 20},
		{ID: "p2", Landlord: "ll-1", PropertyType: property.TypeCommercial, UnitCount: 30, VacancyRate: 10},
	}
	page := NewLandlordsPage(api, newTestMutator(&recordingNotifier{}), testLogger(), query.NewDebouncer(10*time.Millisecond), 20)

	detail, err := page.Detail(context.Background(), "ll-1")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Landlord.Name != "Acme Holdings" {
		t.Fatalf("unexpected landlord %+v", detail.Landlord)
	}
	if detail.Stats.PropertyCount != 2 || detail.Stats.TotalUnits != 40 {
		t.Fatalf("unexpected stats %+v", detail.Stats)
	}
	// Unit-weighted vacancy: (20*10 + 10*30) / 40 = 12.5.
	if detail.Stats.VacancyRate != 12.5 {
		t.Fatalf("expected weighted vacancy 12.5, got %v", detail.Stats.VacancyRate)
	}
	if detail.Stats.ByType["residential"] != 1 || detail.Stats.ByType["commercial"] != 1 {
		t.Fatalf("unexpected type split %+v", detail.Stats.ByType)
	}
}

func TestLandlordsListLoad(t *testing.T) {
	api := newFakeAPI()
	api.landlords = []landlord.Landlord{{ID: "ll-1"}, {ID: "ll-2"}}
	page := NewLandlordsPage(api, newTestMutator(&recordingNotifier{}), testLogger(), query.NewDebouncer(10*time.Millisecond), 20)

	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	v := page.View()
	if v.State != StateSuccess || v.Count != 2 {
		t.Fatalf("unexpected view %+v", v)
	}
}
