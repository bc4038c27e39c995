// Package auth provides authentication and authorization support at the
// service perimeter. Callers arrive with a bearer token and leave as an
// Actor value the rest of the system trusts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/types/role"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

var (
	ErrForbidden    = errors.New("attempted action is not allowed")
	ErrKIDMissing   = errors.New("kid missing from token header")
	ErrKIDMalformed = errors.New("kid in token header is malformed")
	ErrInvalidKind  = errors.New("token contains an invalid actor kind")
	ErrInvalidRole  = errors.New("token contains an invalid role")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
	Kind     string `json:"kind"`
	Role     string `json:"role,omitempty"`
}

// KeyLookup declares a method set of behavior for looking up
// private and public keys for JWT use.
type KeyLookup interface {
	PrivateKey(kid string) (key string, err error)
	PublicKey(kid string) (key string, err error)
}

// Config represents information required to initialize auth.
type Config struct {
	Log       *logger.Logger
	KeyLookup KeyLookup
	Issuer    string
	ActiveKID string
}

// Auth is used to authenticate clients.
type Auth struct {
	log       *logger.Logger
	keyLookup KeyLookup
	method    jwt.SigningMethod
	parser    *jwt.Parser
	issuer    string
	activeKID string
	enforcer  *casbin.Enforcer
}

// New creates an Auth to support authentication/authorization.
func New(cfg Config) (*Auth, error) {
	enforcer, err := newEnforcer()
	if err != nil {
		return nil, fmt.Errorf("creating enforcer: %w", err)
	}

	a := Auth{
		log:       cfg.Log,
		keyLookup: cfg.KeyLookup,
		method:    jwt.GetSigningMethod(jwt.SigningMethodRS256.Name),
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name})),
		issuer:    cfg.Issuer,
		activeKID: cfg.ActiveKID,
		enforcer:  enforcer,
	}

	return &a, nil
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// GenerateToken generates a signed JWT token string for the given actor.
func (a *Auth) GenerateToken(actor Actor) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		TenantID: actor.TenantID.String(),
		Kind:     actor.Kind.String(),
	}

	if actor.Kind.Equal(KindEmployee) {
		claims.Role = actor.Role.String()
	}

	token := jwt.NewWithClaims(a.method, claims)
	token.Header["kid"] = a.activeKID

	privateKeyPEM, err := a.keyLookup.PrivateKey(a.activeKID)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parsing private key from PEM: %w", err)
	}

	str, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Authenticate processes the token to validate the sender's token is valid
// and returns the Actor it represents.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Actor, error) {
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		return Actor{}, errors.New("expected authorization header format: Bearer <token>")
	}

	jwtUnverified := bearerToken[7:]

	var claims Claims
	token, _, err := a.parser.ParseUnverified(jwtUnverified, &claims)
	if err != nil {
		return Actor{}, fmt.Errorf("error parsing token: %w", err)
	}

	kidRaw, exists := token.Header["kid"]
	if !exists {
		return Actor{}, ErrKIDMissing
	}

	kid, ok := kidRaw.(string)
	if !ok {
		return Actor{}, ErrKIDMalformed
	}

	pem, err := a.keyLookup.PublicKey(kid)
	if err != nil {
		return Actor{}, fmt.Errorf("fetching public key for kid %q: %w", kid, err)
	}

	if err := a.verifySignatureAndClaims(jwtUnverified, pem); err != nil {
		a.log.Info(ctx, "**Authenticate-FAILED**", "subject", claims.Subject)
		return Actor{}, fmt.Errorf("authentication failed: %w", err)
	}

	actor, err := toActor(claims)
	if err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Authorize checks the actor is allowed to perform the action against the
// resource. This is the route-level gate. Object-scoped assign decisions
// belong to the permission resolver in the business layer.
func (a *Auth) Authorize(ctx context.Context, actor Actor, res Resource, act Action) error {
	ok, err := a.enforcer.Enforce(actor.subject(), res.String(), act.String())
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: subject %q may not %q on %q", ErrForbidden, actor.subject(), act, res)
	}

	return nil
}

// verifySignatureAndClaims parses the token with the public key, validates
// the signature, and checks the issuer claim.
func (a *Auth) verifySignatureAndClaims(tokenStr, pemStr string) error {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemStr))
	if err != nil {
		return fmt.Errorf("parsing public key: %w", err)
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})

	if err != nil {
		return fmt.Errorf("validating token signature: %w", err)
	}

	if !token.Valid {
		return errors.New("token is invalid")
	}

	if claims.Issuer != a.issuer {
		return fmt.Errorf("invalid issuer: expected %q, got %q", a.issuer, claims.Issuer)
	}

	return nil
}

func toActor(claims Claims) (Actor, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Actor{}, fmt.Errorf("parsing subject %q from claims: %w", claims.Subject, err)
	}

	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return Actor{}, fmt.Errorf("parsing tenant id %q from claims: %w", claims.TenantID, err)
	}

	kind, err := ParseKind(claims.Kind)
	if err != nil {
		return Actor{}, ErrInvalidKind
	}

	actor := Actor{
		ID:       id,
		Kind:     kind,
		TenantID: tenantID,
	}

	if kind.Equal(KindEmployee) {
		r, err := role.Parse(claims.Role)
		if err != nil {
			return Actor{}, ErrInvalidRole
		}
		actor.Role = r
	}

	return actor, nil
}

// =============================================================================

// The model gives tenant owners blanket access and matches everyone else
// against role-scoped policies held in memory.
const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == "KIND:PROVIDER" || (r.sub == p.sub && r.obj == p.obj && r.act == p.act)
`

func newEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("creating enforcer: %w", err)
	}

	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("adding policies: %w", err)
	}

	return e, nil
}
