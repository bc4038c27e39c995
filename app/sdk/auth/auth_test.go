package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/auth"
	"github.com/wachdienst/dienstplan/business/types/role"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

const kid = "54bb2165-71e1-41a6-af3e-7da4a0e1e2c1"

type keyStore struct {
	privatePEM string
	publicPEM  string
}

func (ks keyStore) PrivateKey(kid string) (string, error) {
	return ks.privatePEM, nil
}

func (ks keyStore) PublicKey(kid string) (string, error) {
	return ks.publicPEM, nil
}

func newKeyStore(t *testing.T) keyStore {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}

	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})

	return keyStore{privatePEM: string(privatePEM), publicPEM: string(publicPEM)}
}

func newTestAuth(t *testing.T, issuer string) *auth.Auth {
	t.Helper()

	log := logger.New(os.Stdout, logger.LevelError, "TEST", nil)

	a, err := auth.New(auth.Config{
		Log:       log,
		KeyLookup: newKeyStore(t),
		Issuer:    issuer,
		ActiveKID: kid,
	})
	if err != nil {
		t.Fatalf("constructing auth: %v", err)
	}

	return a
}

func TestAuthenticateRoundTrip(t *testing.T) {
	a := newTestAuth(t, "https://wachdienst.de/auth/")

	actor := auth.Actor{
		ID:       uuid.New(),
		Kind:     auth.KindEmployee,
		Role:     role.MustParse("team_lead"),
		TenantID: uuid.New(),
	}

	token, err := a.GenerateToken(actor)
	if err != nil {
		t.Fatalf("GenerateToken: unexpected error: %v", err)
	}

	got, err := a.Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate: unexpected error: %v", err)
	}

	if got.ID != actor.ID || got.TenantID != actor.TenantID {
		t.Errorf("actor = %+v, want %+v", got, actor)
	}
	if !got.Kind.Equal(auth.KindEmployee) || !got.Role.Equal(role.MustParse("team_lead")) {
		t.Errorf("kind/role = %s/%s", got.Kind, got.Role)
	}
}

func TestAuthenticateProvider(t *testing.T) {
	a := newTestAuth(t, "https://wachdienst.de/auth/")

	actor := auth.Actor{
		ID:       uuid.New(),
		Kind:     auth.KindProvider,
		TenantID: uuid.New(),
	}

	token, err := a.GenerateToken(actor)
	if err != nil {
		t.Fatalf("GenerateToken: unexpected error: %v", err)
	}

	got, err := a.Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate: unexpected error: %v", err)
	}

	if !got.IsProvider() || !got.IsPrivileged() {
		t.Errorf("provider flags = %v/%v, want true/true", got.IsProvider(), got.IsPrivileged())
	}
}

func TestAuthenticateRejects(t *testing.T) {
	a := newTestAuth(t, "https://wachdienst.de/auth/")

	actor := auth.Actor{
		ID:       uuid.New(),
		Kind:     auth.KindEmployee,
		Role:     role.MustParse("worker"),
		TenantID: uuid.New(),
	}

	token, err := a.GenerateToken(actor)
	if err != nil {
		t.Fatalf("GenerateToken: unexpected error: %v", err)
	}

	if _, err := a.Authenticate(context.Background(), token); err == nil {
		t.Error("expected rejection without the Bearer prefix")
	}

	if _, err := a.Authenticate(context.Background(), "Bearer "+token+"tampered"); err == nil {
		t.Error("expected rejection of a tampered token")
	}

	// A token signed by a different key pair must not verify.
	other := newTestAuth(t, "https://wachdienst.de/auth/")
	foreign, err := other.GenerateToken(actor)
	if err != nil {
		t.Fatalf("GenerateToken: unexpected error: %v", err)
	}
	if _, err := a.Authenticate(context.Background(), "Bearer "+foreign); err == nil {
		t.Error("expected rejection of a foreign signature")
	}
}

func TestAuthenticateIssuer(t *testing.T) {
	issuing := newTestAuth(t, "https://somewhere-else.example/auth/")

	actor := auth.Actor{
		ID:       uuid.New(),
		Kind:     auth.KindEmployee,
		Role:     role.MustParse("worker"),
		TenantID: uuid.New(),
	}

	token, err := issuing.GenerateToken(actor)
	if err != nil {
		t.Fatalf("GenerateToken: unexpected error: %v", err)
	}

	if _, err := issuing.Authenticate(context.Background(), "Bearer "+token); err != nil {
		t.Fatalf("Authenticate against own issuer: unexpected error: %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	a := newTestAuth(t, "https://wachdienst.de/auth/")
	ctx := context.Background()

	provider := auth.Actor{ID: uuid.New(), Kind: auth.KindProvider}
	teamLead := auth.Actor{ID: uuid.New(), Kind: auth.KindEmployee, Role: role.MustParse("team_lead")}
	objLead := auth.Actor{ID: uuid.New(), Kind: auth.KindEmployee, Role: role.MustParse("obj_lead")}
	worker := auth.Actor{ID: uuid.New(), Kind: auth.KindEmployee, Role: role.MustParse("worker")}

	tests := []struct {
		name    string
		actor   auth.Actor
		res     auth.Resource
		act     auth.Action
		allowed bool
	}{
		{name: "provider writes anything", actor: provider, res: auth.ResourceEmployees, act: auth.ActionWrite, allowed: true},
		{name: "team lead writes objects", actor: teamLead, res: auth.ResourceObjects, act: auth.ActionWrite, allowed: true},
		{name: "team lead reads reports", actor: teamLead, res: auth.ResourceReports, act: auth.ActionRead, allowed: true},
		{name: "object lead writes shifts", actor: objLead, res: auth.ResourceShifts, act: auth.ActionWrite, allowed: true},
		{name: "object lead writes templates", actor: objLead, res: auth.ResourceTemplates, act: auth.ActionWrite, allowed: true},
		{name: "object lead denied writing objects", actor: objLead, res: auth.ResourceObjects, act: auth.ActionWrite, allowed: false},
		{name: "object lead denied writing employees", actor: objLead, res: auth.ResourceEmployees, act: auth.ActionWrite, allowed: false},
		{name: "worker reads schedule", actor: worker, res: auth.ResourceSchedule, act: auth.ActionRead, allowed: true},
		{name: "worker reads reports", actor: worker, res: auth.ResourceReports, act: auth.ActionRead, allowed: true},
		{name: "worker denied writing shifts", actor: worker, res: auth.ResourceShifts, act: auth.ActionWrite, allowed: false},
		{name: "worker denied writing employees", actor: worker, res: auth.ResourceEmployees, act: auth.ActionWrite, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authorize(ctx, tt.actor, tt.res, tt.act)
			if tt.allowed && err != nil {
				t.Errorf("Authorize: unexpected error: %v", err)
			}
			if !tt.allowed && err == nil {
				t.Error("Authorize: expected denial")
			}
		})
	}
}
