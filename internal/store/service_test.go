package store

import (
	"testing"

	"nexusapi/internal/models"
)

func strPtr(s string) *string { return &s }

func TestServiceStore_SectionsAndDisciplines(t *testing.T) {
	db := testDB(t)
	services := NewServiceStore(db)
	disciplines := NewDisciplineStore(db)
	owner := seedTestUser(t, db, "svc-sections@store-test.local")

	svcSlug, discSlug := uniqueSlug("svc"), uniqueSlug("disc")
	t.Cleanup(func() {
		db.Exec("DELETE FROM services WHERE slug = $1", svcSlug)
		db.Exec("DELETE FROM disciplines WHERE slug = $1", discSlug)
	})

	disc, err := disciplines.Create(&models.Discipline{
		Title: "Structural", Slug: discSlug, IsActive: true, CreatedBy: owner.ID,
	})
	if err != nil {
		t.Fatalf("create discipline: %v", err)
	}

	svc, err := services.Create(&models.Service{
		Title:       "Cloud Migration",
		Description: strPtr("Lift and shift"),
		Slug:        svcSlug,
		IsActive:    true,
		CreatedBy:   owner.ID,
		Sections: []models.Section{
			{Content: strPtr("<p>first</p>"), Caption: strPtr("one")},
			{Content: strPtr("<p>second</p>")},
		},
	}, []int64{disc.ID})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	if len(svc.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(svc.Sections))
	}
	if svc.Sections[0].Order != 0 || svc.Sections[1].Order != 1 {
		t.Errorf("section positions = %d,%d", svc.Sections[0].Order, svc.Sections[1].Order)
	}
	if len(svc.Disciplines) != 1 || svc.Disciplines[0].ID != disc.ID {
		t.Error("discipline link not persisted")
	}

	// Replace sections with one entry and drop the discipline link.
	svc.Sections = []models.Section{{Content: strPtr("<p>only</p>")}}
	if err := services.Update(svc, nil); err != nil {
		t.Fatalf("update service: %v", err)
	}
	updated, _ := services.FindByID(svc.ID)
	if len(updated.Sections) != 1 {
		t.Errorf("sections after update = %d, want 1", len(updated.Sections))
	}
	if len(updated.Disciplines) != 0 {
		t.Error("discipline link should be removed")
	}

	// Reverse lookup from the discipline side.
	d, err := disciplines.FindByID(disc.ID)
	if err != nil {
		t.Fatalf("find discipline: %v", err)
	}
	if len(d.Services) != 0 {
		t.Error("discipline should no longer list the service")
	}
}

func TestDisciplineStore_PublicHidesInactiveLinks(t *testing.T) {
	db := testDB(t)
	services := NewServiceStore(db)
	disciplines := NewDisciplineStore(db)
	owner := seedTestUser(t, db, "disc-public@store-test.local")

	svcSlug, discSlug := uniqueSlug("svc-inactive"), uniqueSlug("disc-public")
	t.Cleanup(func() {
		db.Exec("DELETE FROM services WHERE slug = $1", svcSlug)
		db.Exec("DELETE FROM disciplines WHERE slug = $1", discSlug)
	})

	disc, err := disciplines.Create(&models.Discipline{
		Title: "Mechanical", Slug: discSlug, IsActive: true, CreatedBy: owner.ID,
	})
	if err != nil {
		t.Fatalf("create discipline: %v", err)
	}
	if _, err := services.Create(&models.Service{
		Title: "Retired Service", Slug: svcSlug, IsActive: false, CreatedBy: owner.ID,
	}, []int64{disc.ID}); err != nil {
		t.Fatalf("create service: %v", err)
	}

	admin, err := disciplines.FindByID(disc.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(admin.Services) != 1 {
		t.Error("admin view should include inactive linked services")
	}

	public, err := disciplines.FindBySlug(discSlug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if public == nil {
		t.Fatal("active discipline should be public")
	}
	if len(public.Services) != 0 {
		t.Error("public view must hide inactive linked services")
	}
}

func TestSettingStore_GetOrCreateAndUpdate(t *testing.T) {
	db := testDB(t)
	settings := NewSettingStore(db)

	st, err := settings.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.ID != 1 {
		t.Errorf("settings id = %d, want 1", st.ID)
	}

	years := 12
	st.OurMission = strPtr("Build things that last")
	st.Years = &years
	updated, err := settings.Update(st)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.OurMission == nil || *updated.OurMission != "Build things that last" {
		t.Error("mission not persisted")
	}

	again, _ := settings.Get()
	if again.Years == nil || *again.Years != 12 {
		t.Error("years not persisted")
	}
}
