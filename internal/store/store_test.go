package store

import (
	"context"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/womni/backoffice/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedEmployee(t *testing.T, s *Store, id, firstname, lastname, email string) *model.Employee {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	e := &model.Employee{
		ID:                  id,
		Locale:              "en",
		Firstname:           firstname,
		Lastname:            lastname,
		Email:               email,
		EmailPersonalStatus: "pending",
		Passwd:              "aa:bb",
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.CreateEmployee(context.Background(), e); err != nil {
		t.Fatalf("CreateEmployee(%s): %v", id, err)
	}
	return e
}

func seedAccount(t *testing.T, s *Store, id, slug, name, tenant, region string) *model.Account {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	a := &model.Account{
		ID:        id,
		Partner:   model.DefaultPartner,
		Account:   slug,
		Name:      name,
		Tenant:    tenant,
		Region:    region,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateAccount(context.Background(), a); err != nil {
		t.Fatalf("CreateAccount(%s): %v", id, err)
	}
	return a
}

func seedAssociation(t *testing.T, s *Store, id, employeeID, accountID, role string) *model.Association {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	a := &model.Association{
		ID:         id,
		EmployeeID: employeeID,
		AccountID:  accountID,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.CreateAssociation(context.Background(), a); err != nil {
		t.Fatalf("CreateAssociation(%s): %v", id, err)
	}
	return a
}

func TestEmployeeCreateGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, s, "E1", "Jane", "Doe", "jane@womni.store")

	got, err := s.GetEmployee(ctx, "E1")
	if err != nil {
		t.Fatalf("GetEmployee: %v", err)
	}
	if got.Email != "jane@womni.store" || got.Firstname != "Jane" || !got.Active {
		t.Errorf("GetEmployee: got %+v", got)
	}

	_, err = s.GetEmployee(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEmployee(missing): got %v, want ErrNotFound", err)
	}
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	seedEmployee(t, s, "E1", "Jane", "Doe", "jane@womni.store")

	now := time.Now().UTC()
	err := s.CreateEmployee(context.Background(), &model.Employee{
		ID: "E2", Email: "jane@womni.store", Passwd: "aa:bb", Active: true,
		CreatedAt: now, UpdatedAt: now,
	})
	if err == nil {
		t.Error("CreateEmployee with duplicate email succeeded")
	}
}

func TestGetActiveEmployeeByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, s, "E1", "Jane", "Doe", "jane@womni.store")

	inactive := seedEmployee(t, s, "E2", "John", "Roe", "john@womni.store")
	if _, err := s.db.ExecContext(ctx, `UPDATE employee SET active = FALSE WHERE id = ?`, inactive.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	got, err := s.GetActiveEmployeeByEmail(ctx, "jane@womni.store")
	if err != nil {
		t.Fatalf("GetActiveEmployeeByEmail: %v", err)
	}
	if got.ID != "E1" {
		t.Errorf("got employee %s, want E1", got.ID)
	}

	_, err = s.GetActiveEmployeeByEmail(ctx, "john@womni.store")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("inactive employee: got %v, want ErrNotFound", err)
	}
	_, err = s.GetActiveEmployeeByEmail(ctx, "nobody@womni.store")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown email: got %v, want ErrNotFound", err)
	}
}

func TestEmailAndPhoneExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEmployee(t, s, "E1", "Jane", "Doe", "jane@womni.store")
	if _, err := s.db.ExecContext(ctx,
		`UPDATE employee SET phonePrefix = '+46', phone = '701234567' WHERE id = ?`, e.ID); err != nil {
		t.Fatalf("set phone: %v", err)
	}

	tests := []struct {
		name string
		got  func() (bool, error)
		want bool
	}{
		{"email present", func() (bool, error) { return s.EmailExists(ctx, "jane@womni.store") }, true},
		{"email absent", func() (bool, error) { return s.EmailExists(ctx, "other@womni.store") }, false},
		{"phone present", func() (bool, error) { return s.PhoneExists(ctx, "+46", "701234567") }, true},
		{"phone wrong prefix", func() (bool, error) { return s.PhoneExists(ctx, "+47", "701234567") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			if err != nil {
				t.Fatalf("exists check: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchEmployees(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, s, "E1", "Zoe", "Adams", "zoe@womni.store")
	seedEmployee(t, s, "E2", "Amy", "Brown", "amy@womni.store")
	e3 := seedEmployee(t, s, "E3", "Bob", "Clark", "bob@example.com")
	if _, err := s.db.ExecContext(ctx,
		`UPDATE employee SET phonePrefix = '+46', phone = '701234567' WHERE id = ?`, e3.ID); err != nil {
		t.Fatalf("set phone: %v", err)
	}

	byEmail, err := s.SearchEmployees(ctx, EmployeeFilter{Email: "womni.store"})
	if err != nil {
		t.Fatalf("SearchEmployees: %v", err)
	}
	if len(byEmail) != 2 {
		t.Fatalf("email search: got %d rows, want 2", len(byEmail))
	}
	if byEmail[0].ID != "E2" || byEmail[1].ID != "E1" {
		t.Errorf("email search order: got %s, %s, want E2, E1", byEmail[0].ID, byEmail[1].ID)
	}

	byPhone, err := s.SearchEmployees(ctx, EmployeeFilter{Phone: "1234", PhonePrefix: "+46"})
	if err != nil {
		t.Fatalf("SearchEmployees: %v", err)
	}
	if len(byPhone) != 1 || byPhone[0].ID != "E3" {
		t.Errorf("phone search: got %+v, want E3", byPhone)
	}

	none, err := s.SearchEmployees(ctx, EmployeeFilter{Email: "nothing-matches"})
	if err != nil {
		t.Fatalf("SearchEmployees: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("empty search: got %d rows, want 0", len(none))
	}
}

func TestAssociationLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, s, "E1", "Jane", "Doe", "jane@womni.store")
	seedAccount(t, s, "A1", "coffeehouse", "Coffee House", "T1", "eu")
	seedAssociation(t, s, "EA1", "E1", "A1", "STAFF")

	got, err := s.GetAssociation(ctx, "E1", "A1")
	if err != nil {
		t.Fatalf("GetAssociation: %v", err)
	}
	if got.Role != "STAFF" {
		t.Errorf("Role: got %q, want STAFF", got.Role)
	}

	updated, err := s.UpdateAssociationRole(ctx, "E1", "A1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateAssociationRole: %v", err)
	}
	if updated.Role != model.RoleAdmin {
		t.Errorf("updated Role: got %q, want ADMIN", updated.Role)
	}

	again, err := s.GetAssociation(ctx, "E1", "A1")
	if err != nil {
		t.Fatalf("GetAssociation after update: %v", err)
	}
	if again.Role != model.RoleAdmin {
		t.Errorf("persisted Role: got %q, want ADMIN", again.Role)
	}

	_, err = s.UpdateAssociationRole(ctx, "E1", "missing", "STAFF")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing association: got %v, want ErrNotFound", err)
	}
	_, err = s.GetAssociation(ctx, "E1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing association: got %v, want ErrNotFound", err)
	}
}

func TestCreateAssociationDuplicate(t *testing.T) {
	s := newTestStore(t)

	seedEmployee(t, s, "E1", "Jane", "Doe", "jane@womni.store")
	seedAccount(t, s, "A1", "coffeehouse", "Coffee House", "T1", "eu")
	seedAssociation(t, s, "EA1", "E1", "A1", "STAFF")

	now := time.Now().UTC()
	err := s.CreateAssociation(context.Background(), &model.Association{
		ID: "EA2", EmployeeID: "E1", AccountID: "A1", Role: "ADMIN",
		CreatedAt: now, UpdatedAt: now,
	})
	if err == nil {
		t.Error("duplicate association insert succeeded")
	}
}

func TestGetAssociationDetail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, s, "E1", "Jane", "Doe", "jane@womni.store")
	seedAccount(t, s, "A1", "coffeehouse", "Coffee House", "T1", "eu")
	seedAssociation(t, s, "EA1", "E1", "A1", model.RoleAdmin)

	d, err := s.GetAssociationDetail(ctx, "E1", "A1")
	if err != nil {
		t.Fatalf("GetAssociationDetail: %v", err)
	}
	if d.Role != model.RoleAdmin || d.AccountName != "Coffee House" ||
		d.Tenant != "T1" || d.Region != "eu" ||
		d.Firstname != "Jane" || d.Email != "jane@womni.store" {
		t.Errorf("GetAssociationDetail: got %+v", d)
	}

	_, err = s.GetAssociationDetail(ctx, "E1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing detail: got %v, want ErrNotFound", err)
	}
}

func TestAccountListings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, s, "E1", "Jane", "Doe", "jane@womni.store")
	seedEmployee(t, s, "E2", "Amy", "Brown", "amy@womni.store")
	seedAccount(t, s, "A1", "coffeehouse", "Coffee House", "T1", "eu")
	seedAccount(t, s, "A2", "bakery", "Bakery", "T2", "us")
	seedAssociation(t, s, "EA1", "E1", "A1", model.RoleAdmin)
	seedAssociation(t, s, "EA2", "E1", "A2", "STAFF")
	seedAssociation(t, s, "EA3", "E2", "A1", "STAFF")

	accounts, err := s.ListEmployeeAccounts(ctx, "E1")
	if err != nil {
		t.Fatalf("ListEmployeeAccounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("ListEmployeeAccounts: got %d rows, want 2", len(accounts))
	}
	if accounts[0].Name != "Bakery" || accounts[1].Name != "Coffee House" {
		t.Errorf("order: got %q, %q", accounts[0].Name, accounts[1].Name)
	}
	if accounts[1].Role != model.RoleAdmin || accounts[1].Tenant != "T1" || accounts[1].Region != "eu" {
		t.Errorf("joined fields: got %+v", accounts[1])
	}

	granted, err := s.ListGrantedAccounts(ctx, "E1")
	if err != nil {
		t.Fatalf("ListGrantedAccounts: %v", err)
	}
	if len(granted) != 2 {
		t.Fatalf("ListGrantedAccounts: got %d rows, want 2", len(granted))
	}
	if granted[1].Account != "coffeehouse" || granted[1].Partner != model.DefaultPartner ||
		granted[1].Role != model.RoleAdmin {
		t.Errorf("granted fields: got %+v", granted[1])
	}

	employees, err := s.ListAccountEmployees(ctx, "A1")
	if err != nil {
		t.Fatalf("ListAccountEmployees: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("ListAccountEmployees: got %d rows, want 2", len(employees))
	}
	if employees[0].Firstname != "Amy" || employees[1].Firstname != "Jane" {
		t.Errorf("order: got %q, %q", employees[0].Firstname, employees[1].Firstname)
	}
	if employees[1].Role != model.RoleAdmin || employees[1].Email != "jane@womni.store" {
		t.Errorf("joined fields: got %+v", employees[1])
	}

	empty, err := s.ListEmployeeAccounts(ctx, "missing")
	if err != nil {
		t.Fatalf("ListEmployeeAccounts(missing): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d rows for unknown employee, want 0", len(empty))
	}
}

func TestSlugExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAccount(t, s, "A1", "coffeehouse", "Coffee House", "T1", "eu")

	exists, err := s.SlugExists(ctx, "coffeehouse")
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if !exists {
		t.Error("SlugExists(coffeehouse): got false, want true")
	}

	exists, err = s.SlugExists(ctx, "bakery")
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if exists {
		t.Error("SlugExists(bakery): got true, want false")
	}
}

func TestEmployeeGrant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, s, "E1", "Jane", "Doe", "jane@womni.store")
	seedAccount(t, s, "A1", "coffeehouse", "Coffee House", "T1", "eu")
	seedAssociation(t, s, "EA1", "E1", "A1", model.RoleAdmin)

	grant, err := s.EmployeeGrant(ctx, "E1", "A1")
	if err != nil {
		t.Fatalf("EmployeeGrant: %v", err)
	}
	if grant == nil {
		t.Fatal("EmployeeGrant: got nil, want grant")
	}
	if grant.Role != model.RoleAdmin || grant.Partner != model.DefaultPartner ||
		grant.AccountSlug != "coffeehouse" || grant.AccountName != "Coffee House" {
		t.Errorf("EmployeeGrant: got %+v", grant)
	}

	none, err := s.EmployeeGrant(ctx, "E1", "A2")
	if err != nil {
		t.Fatalf("EmployeeGrant: %v", err)
	}
	if none != nil {
		t.Errorf("EmployeeGrant without association: got %+v, want nil", none)
	}
}

func TestAPIKeyBinding(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAccount(t, s, "A1", "coffeehouse", "Coffee House", "T1", "eu")
	err := s.CreateAPIKey(ctx, &model.AccountAPIKey{
		ID: "K1", AccountID: "A1", APIKey: "secret-key", Label: "pos",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAPIKey: %v", err)
	}

	binding, err := s.APIKeyBinding(ctx, "secret-key")
	if err != nil {
		t.Fatalf("APIKeyBinding: %v", err)
	}
	if binding == nil {
		t.Fatal("APIKeyBinding: got nil, want binding")
	}
	if binding.AccountID != "A1" || binding.Tenant != "T1" ||
		binding.Region != "eu" || binding.AccountName != "Coffee House" {
		t.Errorf("APIKeyBinding: got %+v", binding)
	}

	unknown, err := s.APIKeyBinding(ctx, "wrong-key")
	if err != nil {
		t.Fatalf("APIKeyBinding: %v", err)
	}
	if unknown != nil {
		t.Errorf("APIKeyBinding(wrong-key): got %+v, want nil", unknown)
	}
}
