package resolver

import (
	"errors"
	"fmt"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

// Options tune a single resolution.
type Options struct {
	// Fallback enables the locale-relaxed, primary and priority fallbacks.
	// When false only an exact (context, locale) match resolves.
	Fallback bool

	// Owner marks the caller as the identity owner, enabling
	// auto-provisioning when the user holds no identities at all.
	Owner bool
}

// DefaultOptions resolve with all fallbacks and no provisioning.
var DefaultOptions = Options{Fallback: true}

// Result carries the resolved identity. Provisioned is set when the record
// was auto-created during this resolution, so callers can audit the event.
type Result struct {
	Identity    *model.Identity
	Provisioned bool
}

// Resolver selects identity records for (user, context, locale) requests.
type Resolver struct {
	identities store.IdentitiesStore
	priorities store.PrioritiesStore
	users      store.UsersStore
}

// New creates a Resolver over the given stores.
func New(identities store.IdentitiesStore, priorities store.PrioritiesStore, users store.UsersStore) *Resolver {
	return &Resolver{
		identities: identities,
		priorities: priorities,
		users:      users,
	}
}

// Resolve picks the best-matching identity for the request.
//
// Resolution order, first match wins:
//  1. exact active match on (context, locale)
//  2. same context, any locale (primary first, then oldest created_at)
//  3. the user's primary active identity, regardless of context
//  4. the active identity whose context ranks best in the priority table
//  5. store.ErrIdentityNotFound
//
// A malformed locale is rejected before any lookup. When opts.Owner is set
// and the user holds zero identities, a minimal display identity is
// provisioned first and resolution proceeds against it.
func (r *Resolver) Resolve(userID uint, context model.Context, locale string, opts Options) (*Result, error) {
	if !context.IsAContext() {
		return nil, fmt.Errorf("unknown context %d", int(context))
	}
	if err := model.ValidateLocale(locale); err != nil {
		return nil, err
	}

	provisioned := false
	if opts.Owner {
		count, err := r.identities.CountByUser(userID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			if err := r.provision(userID, locale); err != nil {
				return nil, err
			}
			provisioned = true
		}
	}

	identity, err := r.identities.FindExact(userID, context, locale)
	if err == nil {
		return &Result{Identity: identity, Provisioned: provisioned}, nil
	}
	if !errors.Is(err, store.ErrIdentityNotFound) {
		return nil, err
	}

	if !opts.Fallback {
		return nil, store.ErrIdentityNotFound
	}

	// Locale-relaxed fallback: the context matters more than the locale.
	candidates, err := r.identities.FindByContext(userID, context)
	if err != nil && !errors.Is(err, store.ErrIdentityNotFound) {
		return nil, err
	}
	if len(candidates) > 0 {
		return &Result{Identity: &candidates[0], Provisioned: provisioned}, nil
	}

	// Global fallback: some representation of the user beats none.
	identity, err = r.identities.FindPrimary(userID)
	if err == nil {
		return &Result{Identity: identity, Provisioned: provisioned}, nil
	}
	if !errors.Is(err, store.ErrIdentityNotFound) {
		return nil, err
	}

	identity, err = r.bestByPriority(userID)
	if err != nil {
		return nil, err
	}
	return &Result{Identity: identity, Provisioned: provisioned}, nil
}

// bestByPriority picks the active identity whose context has the lowest
// priority value, breaking ties by most-recent created_at.
func (r *Resolver) bestByPriority(userID uint) (*model.Identity, error) {
	identities, err := r.identities.ListByUser(userID, true)
	if err != nil {
		return nil, err
	}
	if len(identities) == 0 {
		return nil, store.ErrIdentityNotFound
	}

	best := -1
	bestPriority := 0
	for idx := range identities {
		p, err := r.priorities.GetPriority(userID, identities[idx].Context)
		if err != nil {
			p = model.DefaultPriority
		}
		switch {
		case best < 0, p < bestPriority:
			best, bestPriority = idx, p
		case p == bestPriority && identities[idx].CreatedAt.After(identities[best].CreatedAt):
			best = idx
		}
	}
	return &identities[best], nil
}

// provision creates the user's first identity: a minimal primary display
// record seeded from the account. A concurrent provision losing the
// unique-key race is absorbed; the winner's row is used on re-read.
func (r *Resolver) provision(userID uint, locale string) error {
	user, err := r.users.Get(userID)
	if err != nil {
		return err
	}

	given := user.FirstName
	if given == "" {
		given = user.Username
	}
	family := user.LastName
	if family == "" {
		family = "User"
	}

	identity := &model.Identity{
		UserID:     userID,
		Context:    model.ContextDisplay,
		Locale:     locale,
		GivenName:  given,
		FamilyName: family,
		Email:      user.Email,
		Visibility: model.VisibilityPrivate,
		IsPrimary:  true,
		IsActive:   true,
	}

	err = r.identities.Create(identity)
	if errors.Is(err, store.ErrDuplicateIdentity) {
		return nil
	}
	return err
}
