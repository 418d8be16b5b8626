package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/apartmanager/internal/models"
	"github.com/mmynk/apartmanager/internal/session"
)

func TestListResidents(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAdmin(t)

	resp, err := call[ListResidentsRequest, ListResidentsResponse](t, env, ResidentServiceName, "ListResidents", token, &ListResidentsRequest{})
	if err != nil {
		t.Fatalf("ListResidents failed: %v", err)
	}
	if len(resp.Residents) != 14 {
		t.Errorf("expected 14 residents, got %d", len(resp.Residents))
	}
	if resp.MemberCounts["B-205"] != 3 || resp.MemberCounts["A-201"] != 1 {
		t.Errorf("unexpected member counts %v", resp.MemberCounts)
	}
	if resp.Residents[0].ApartmentID != "A-101" {
		t.Errorf("expected residents grouped by apartment, first is %s", resp.Residents[0].ApartmentID)
	}

	filtered, err := call[ListResidentsRequest, ListResidentsResponse](t, env, ResidentServiceName, "ListResidents", token, &ListResidentsRequest{Term: "TRỊNH"})
	if err != nil {
		t.Fatalf("ListResidents failed: %v", err)
	}
	if len(filtered.Residents) != 2 {
		t.Errorf("expected 2 matches, got %d", len(filtered.Residents))
	}
	if filtered.MemberCounts["B-205"] != 3 {
		t.Error("member counts should cover every resident, not only matches")
	}
}

func TestSaveResident_Create(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAdmin(t)

	resp, err := call[SaveResidentRequest, ResidentResponse](t, env, ResidentServiceName, "SaveResident", token, &SaveResidentRequest{
		Name:     "Bùi Thị Thu",
		Phone:    "0939999991",
		Building: "D",
		Room:     "501",
		Role:     models.RoleOwner,
	})
	if err != nil {
		t.Fatalf("SaveResident failed: %v", err)
	}

	r := resp.Resident
	if r.ApartmentID != "D-501" {
		t.Errorf("apartmentId: expected D-501, got %s", r.ApartmentID)
	}
	if r.ID == "" {
		t.Error("id: expected a generated id")
	}
	if r.EntryDate != "2025-12-15" || r.Status != models.ResidentActive || r.MemberCount != 1 {
		t.Errorf("defaults not applied: %+v", r)
	}

	residents, err := env.store.Residents(context.Background())
	if err != nil {
		t.Fatalf("Residents: %v", err)
	}
	if len(residents) != 15 {
		t.Errorf("expected 15 residents, got %d", len(residents))
	}
}

func TestSaveResident_UniqueIDs(t *testing.T) {
	// The test clock never advances, so every create lands on the same instant.
	env := setupTestServer(t)
	token := env.loginAdmin(t)

	seen := make(map[string]bool)
	for i := 1; i <= 20; i++ {
		resp, err := call[SaveResidentRequest, ResidentResponse](t, env, ResidentServiceName, "SaveResident", token, &SaveResidentRequest{
			Name:     "Cư dân " + strconv.Itoa(i),
			Building: "E",
			Room:     strconv.Itoa(100 + i),
		})
		if err != nil {
			t.Fatalf("SaveResident %d failed: %v", i, err)
		}
		if seen[resp.Resident.ID] {
			t.Fatalf("resident %d reused id %s", i, resp.Resident.ID)
		}
		seen[resp.Resident.ID] = true
	}

	residents, err := env.store.Residents(context.Background())
	if err != nil {
		t.Fatalf("Residents: %v", err)
	}
	if len(residents) != 34 {
		t.Errorf("expected 34 residents, got %d", len(residents))
	}

	// Deleting one created resident must leave the other nineteen.
	var victim string
	for id := range seen {
		victim = id
		break
	}
	if _, err := call[DeleteResidentRequest, DeleteResidentResponse](t, env, ResidentServiceName, "DeleteResident", token, &DeleteResidentRequest{ID: victim}); err != nil {
		t.Fatalf("DeleteResident failed: %v", err)
	}
	residents, err = env.store.Residents(context.Background())
	if err != nil {
		t.Fatalf("Residents: %v", err)
	}
	if len(residents) != 33 {
		t.Errorf("expected 33 residents after one delete, got %d", len(residents))
	}
}

func TestSaveResident_OwnerUniqueness(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAdmin(t)

	_, err := call[SaveResidentRequest, ResidentResponse](t, env, ResidentServiceName, "SaveResident", token, &SaveResidentRequest{
		Name:        "Người Mới",
		ApartmentID: "A-101",
		Role:        models.RoleOwner,
	})
	expectCode(t, err, connect.CodeFailedPrecondition)

	residents, _ := env.store.Residents(context.Background())
	if len(residents) != 14 {
		t.Errorf("rejected save must not write, got %d residents", len(residents))
	}

	// Re-saving the current owner is allowed.
	resp, err := call[SaveResidentRequest, ResidentResponse](t, env, ResidentServiceName, "SaveResident", token, &SaveResidentRequest{
		ID:          "A101-1",
		Name:        "Nguyễn Văn An",
		Phone:       "0901000000",
		ApartmentID: "A-101",
		Role:        models.RoleOwner,
	})
	if err != nil {
		t.Fatalf("editing the owner failed: %v", err)
	}
	if resp.Resident.Phone != "0901000000" || resp.Resident.EntryDate != "2024-01-10" {
		t.Errorf("unexpected edit result %+v", resp.Resident)
	}

	// Promoting a member while the owner exists is not.
	_, err = call[SaveResidentRequest, ResidentResponse](t, env, ResidentServiceName, "SaveResident", token, &SaveResidentRequest{
		ID:          "A101-2",
		Name:        "Trần Thị Hoa",
		ApartmentID: "A-101",
		Role:        models.RoleOwner,
	})
	expectCode(t, err, connect.CodeFailedPrecondition)
}

func TestSaveResident_Invalid(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAdmin(t)

	tests := []struct {
		name string
		req  SaveResidentRequest
		code connect.Code
	}{
		{"no apartment", SaveResidentRequest{Name: "A"}, connect.CodeInvalidArgument},
		{"building without room", SaveResidentRequest{Name: "A", Building: "D"}, connect.CodeInvalidArgument},
		{"bad email", SaveResidentRequest{Name: "A", ApartmentID: "A-1", Email: "nope"}, connect.CodeInvalidArgument},
		{"bad date", SaveResidentRequest{Name: "A", ApartmentID: "A-1", EntryDate: "15/12/2025"}, connect.CodeInvalidArgument},
		{"unknown id", SaveResidentRequest{ID: "missing", Name: "A", ApartmentID: "A-1"}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call[SaveResidentRequest, ResidentResponse](t, env, ResidentServiceName, "SaveResident", token, &tt.req)
			expectCode(t, err, tt.code)
		})
	}
}

func TestDeleteResident(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAdmin(t)

	if _, err := call[DeleteResidentRequest, DeleteResidentResponse](t, env, ResidentServiceName, "DeleteResident", token, &DeleteResidentRequest{ID: "B205-3"}); err != nil {
		t.Fatalf("DeleteResident failed: %v", err)
	}
	_, err := call[DeleteResidentRequest, DeleteResidentResponse](t, env, ResidentServiceName, "DeleteResident", token, &DeleteResidentRequest{ID: "B205-3"})
	expectCode(t, err, connect.CodeNotFound)

	resp, err := call[ListResidentsRequest, ListResidentsResponse](t, env, ResidentServiceName, "ListResidents", token, &ListResidentsRequest{})
	if err != nil {
		t.Fatalf("ListResidents failed: %v", err)
	}
	if resp.MemberCounts["B-205"] != 2 {
		t.Errorf("B-205 member count: expected 2, got %d", resp.MemberCounts["B-205"])
	}
}

func TestProfile_ExistingResident(t *testing.T) {
	env := setupTestServer(t)
	token := env.registerResident(t, "an.nguyen@gmail.com", "")

	resp, err := call[GetProfileRequest, GetProfileResponse](t, env, ResidentServiceName, "GetProfile", token, &GetProfileRequest{})
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if !resp.Registered || resp.Resident.ID != "A101-1" {
		t.Errorf("expected registered profile A101-1, got %+v", resp)
	}

	updated, err := call[UpsertProfileRequest, ResidentResponse](t, env, ResidentServiceName, "UpsertProfile", token, &UpsertProfileRequest{
		Name:        "Nguyễn Văn An",
		Phone:       "0909999999",
		MemberCount: 4,
	})
	if err != nil {
		t.Fatalf("UpsertProfile failed: %v", err)
	}
	if updated.Resident.ID != "A101-1" || updated.Resident.Phone != "0909999999" || updated.Resident.Role != models.RoleOwner {
		t.Errorf("merge lost fields: %+v", updated.Resident)
	}
}

func TestProfile_NewResident(t *testing.T) {
	env := setupTestServer(t)
	token := env.registerResident(t, "minh@apart.vn", "C-101")

	draft, err := call[GetProfileRequest, GetProfileResponse](t, env, ResidentServiceName, "GetProfile", token, &GetProfileRequest{})
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if draft.Registered || draft.Resident.ApartmentID != "C-101" || draft.Resident.ID != "" {
		t.Errorf("expected unsaved draft, got %+v", draft)
	}

	created, err := call[UpsertProfileRequest, ResidentResponse](t, env, ResidentServiceName, "UpsertProfile", token, &UpsertProfileRequest{Name: "Lý Minh"})
	if err != nil {
		t.Fatalf("UpsertProfile failed: %v", err)
	}
	if created.Resident.ID == "" || created.Resident.Email != "minh@apart.vn" || created.Resident.ApartmentID != "C-101" {
		t.Errorf("unexpected created profile %+v", created.Resident)
	}

	again, err := call[GetProfileRequest, GetProfileResponse](t, env, ResidentServiceName, "GetProfile", token, &GetProfileRequest{})
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if !again.Registered || again.Resident.Name != "Lý Minh" {
		t.Errorf("expected stored profile, got %+v", again)
	}
}

func TestProfile_DistinctIDs(t *testing.T) {
	env := setupTestServer(t)

	var ids []string
	for _, email := range []string{"an@apart.vn", "binh@apart.vn"} {
		token := env.registerResident(t, email, "C-102")
		created, err := call[UpsertProfileRequest, ResidentResponse](t, env, ResidentServiceName, "UpsertProfile", token, &UpsertProfileRequest{Name: email})
		if err != nil {
			t.Fatalf("UpsertProfile %s failed: %v", email, err)
		}
		ids = append(ids, created.Resident.ID)
	}
	if ids[0] == ids[1] {
		t.Errorf("profiles created at the same instant share id %s", ids[0])
	}
}

func TestProfile_SignedOut(t *testing.T) {
	env := setupTestServer(t)
	svc := NewResidentService(env.store, env.sessions, nil)

	_, err := svc.GetProfile(context.Background(), connect.NewRequest(&GetProfileRequest{}))
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("GetProfile: expected ErrNotAuthenticated, got %v", err)
	}
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("GetProfile: expected unauthenticated, got %v", connect.CodeOf(err))
	}

	_, err = svc.UpsertProfile(context.Background(), connect.NewRequest(&UpsertProfileRequest{Name: "x"}))
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("UpsertProfile: expected ErrNotAuthenticated, got %v", err)
	}
}

func TestProfile_AdminHasNone(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAdmin(t)

	_, err := call[GetProfileRequest, GetProfileResponse](t, env, ResidentServiceName, "GetProfile", token, &GetProfileRequest{})
	expectCode(t, err, connect.CodePermissionDenied)
}
