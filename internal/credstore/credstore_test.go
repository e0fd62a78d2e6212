package credstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"marketdash-api/internal/model"
	"marketdash-api/pkg/adapters"
)

type fakeKeysModel struct {
	rows map[string]*model.UserApiKeys
	err  error
}

func (f *fakeKeysModel) FindOneByUserId(ctx context.Context, userId string) (*model.UserApiKeys, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[userId]
	if !ok {
		return nil, model.ErrNotFound
	}
	return row, nil
}

func (f *fakeKeysModel) Upsert(ctx context.Context, data *model.UserApiKeys) error { return nil }

func (f *fakeKeysModel) DeleteByUserId(ctx context.Context, userId string) error { return nil }

func TestResolve(t *testing.T) {
	store := New(&fakeKeysModel{rows: map[string]*model.UserApiKeys{
		"u1": {
			UserId:           "u1",
			TwelveDataApiKey: sql.NullString{String: "td-key", Valid: true},
			FredApiKey:       sql.NullString{String: "ignored", Valid: false},
		},
	}})

	creds := store.Resolve(context.Background(), "u1")
	assert.Equal(t, "td-key", creds.TwelveData)
	// Invalid NullString means no key.
	assert.Empty(t, creds.FRED)
	assert.Empty(t, creds.Polygon)
}

func TestResolveMissingUserIsZero(t *testing.T) {
	store := New(&fakeKeysModel{})
	assert.True(t, store.Resolve(context.Background(), "nobody").IsZero())
}

func TestResolveBlankUserSkipsLookup(t *testing.T) {
	store := New(&fakeKeysModel{err: errors.New("must not be called")})
	assert.Equal(t, adapters.Credentials{}, store.Resolve(context.Background(), ""))
}

func TestResolveLookupFailureDegradesToZero(t *testing.T) {
	store := New(&fakeKeysModel{err: errors.New("connection refused")})
	assert.True(t, store.Resolve(context.Background(), "u1").IsZero())
}

func TestResolveNilModel(t *testing.T) {
	store := New(nil)
	assert.True(t, store.Resolve(context.Background(), "u1").IsZero())
}
