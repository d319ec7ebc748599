package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/propkit/pkg/props"
)

type account struct {
	Owner   string   `prop:"public"`
	Balance float64  `prop:"readonly,default=0"`
	Secret  string   `prop:"writeonly,setter=conceal"`
	Audit   []string `prop:"internal"`
	Skipped int      `prop:"-"`
	Orphan  int
	hidden  bool
}

// TestFor verifies tag-driven schema synthesis.
func TestFor(t *testing.T) {
	cache.reset()

	cs, err := For[account]()
	require.NoError(t, err)
	assert.Equal(t, "account", cs.Name())

	getter, ok := cs.GetterName("owner")
	require.True(t, ok)
	assert.Equal(t, "getOwner", getter)
	setter, ok := cs.SetterName("owner")
	require.True(t, ok)
	assert.Equal(t, "setOwner", setter)

	_, ok = cs.SetterName("balance")
	assert.False(t, ok)

	setter, ok = cs.SetterName("secret")
	require.True(t, ok)
	assert.Equal(t, "conceal", setter)
	_, ok = cs.GetterName("secret")
	assert.False(t, ok)

	// internal: declared, no accessors, no warning.
	assert.True(t, cs.Has("audit"))
	_, ok = cs.GetterName("audit")
	assert.False(t, ok)

	// prop:"-" omits the field; unexported fields never appear.
	assert.False(t, cs.Has("skipped"))
	assert.False(t, cs.Has("hidden"))

	// Untagged exported field is unconfigured.
	require.Len(t, cs.Warnings(), 1)
	assert.Equal(t, "orphan", cs.Warnings()[0].Field)
}

// TestFor_InferredTypes verifies declared types come from the Go field
// types.
func TestFor_InferredTypes(t *testing.T) {
	cache.reset()

	cs, err := For[account]()
	require.NoError(t, err)

	typ, ok := cs.TypeFor("owner")
	require.True(t, ok)
	assert.Equal(t, "string", typ.Name())

	typ, ok = cs.TypeFor("balance")
	require.True(t, ok)
	assert.Equal(t, "float", typ.Name())

	typ, ok = cs.TypeFor("audit")
	require.True(t, ok)
	assert.Equal(t, "slice", typ.Name())

	obj, err := cs.New()
	require.NoError(t, err)
	_, err = obj.Call("setOwner", 42)
	assert.ErrorIs(t, err, props.ErrTypeMismatch)
}

// TestFor_TypeOverride verifies type= beats the inferred field type.
func TestFor_TypeOverride(t *testing.T) {
	type doc struct {
		Payload any `prop:"public,type=map"`
	}
	cache.reset()

	cs, err := For[doc]()
	require.NoError(t, err)

	typ, ok := cs.TypeFor("payload")
	require.True(t, ok)
	assert.Equal(t, "map", typ.Name())
}

// TestFor_UntypedAny verifies an untyped any field skips the check.
func TestFor_UntypedAny(t *testing.T) {
	type doc struct {
		Payload any `prop:"public"`
	}
	cache.reset()

	cs, err := For[doc]()
	require.NoError(t, err)

	_, ok := cs.TypeFor("payload")
	assert.False(t, ok)
}

// TestFor_Default verifies default= is parsed to the field's Go type and
// applied at construction.
func TestFor_Default(t *testing.T) {
	type settings struct {
		Retries int     `prop:"public,default=3"`
		Rate    float64 `prop:"public,default=0.5"`
		Debug   bool    `prop:"public,default=true"`
		Label   string  `prop:"public,default=dev"`
	}
	cache.reset()

	cs, err := For[settings]()
	require.NoError(t, err)
	obj, err := cs.New()
	require.NoError(t, err)

	assert.Equal(t, 3, obj.MustCall("getRetries"))
	assert.Equal(t, 0.5, obj.MustCall("getRate"))
	assert.Equal(t, true, obj.MustCall("getDebug"))
	assert.Equal(t, "dev", obj.MustCall("getLabel"))
}

// TestFor_BadTags verifies malformed tags fail with ConfigurationError.
func TestFor_BadTags(t *testing.T) {
	testCases := []struct {
		name     string
		build    func() (*props.CompiledSchema, error)
		sentinel error
	}{
		{
			"unknown preset",
			func() (*props.CompiledSchema, error) {
				type bad struct {
					X int `prop:"protected"`
				}
				return For[bad]()
			},
			props.ErrBadDescriptor,
		},
		{
			"unknown option",
			func() (*props.CompiledSchema, error) {
				type bad struct {
					X int `prop:"public,visibility=high"`
				}
				return For[bad]()
			},
			props.ErrBadDescriptor,
		},
		{
			"bare option token",
			func() (*props.CompiledSchema, error) {
				type bad struct {
					X int `prop:"public,getter"`
				}
				return For[bad]()
			},
			props.ErrBadDescriptor,
		},
		{
			"unknown type name",
			func() (*props.CompiledSchema, error) {
				type bad struct {
					X int `prop:"public,type=quaternion"`
				}
				return For[bad]()
			},
			props.ErrUnknownTypeName,
		},
		{
			"unparseable default",
			func() (*props.CompiledSchema, error) {
				type bad struct {
					X int `prop:"public,default=lots"`
				}
				return For[bad]()
			},
			props.ErrBadDescriptor,
		},
		{
			"bad setter name",
			func() (*props.CompiledSchema, error) {
				type bad struct {
					X int `prop:"public,setter=123bad"`
				}
				return For[bad]()
			},
			props.ErrBadAccessorName,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cache.reset()
			_, err := tc.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)
		})
	}
}

// TestSchemaFor_NonStruct verifies non-struct types are rejected.
func TestSchemaFor_NonStruct(t *testing.T) {
	_, err := For[int]()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a struct type")
}

// TestFor_Cached verifies the per-type cache returns the identical
// compiled schema.
func TestFor_Cached(t *testing.T) {
	cache.reset()

	a, err := For[account]()
	require.NoError(t, err)
	b, err := For[account]()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

// TestFor_WithOptions_Uncached verifies option-built schemas bypass the
// cache.
func TestFor_WithOptions_Uncached(t *testing.T) {
	cache.reset()

	a, err := For[account]()
	require.NoError(t, err)
	b, err := For[account](props.WithName("Ledger"))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, "Ledger", b.Name())
	// The cache entry is untouched.
	c, err := For[account]()
	require.NoError(t, err)
	assert.Same(t, a, c)
}

// TestWrap verifies wrapping seeds current struct values and keeps
// defaults for zero fields.
func TestWrap(t *testing.T) {
	cache.reset()

	obj, err := Wrap(&account{Owner: "alice", Secret: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "alice", obj.MustCall("getOwner"))

	// Zero balance falls back to the declared default.
	assert.Equal(t, float64(0), obj.MustCall("getBalance"))

	// Write-only seed is present but unreadable through accessors.
	_, err = obj.Call("getSecret")
	assert.ErrorIs(t, err, props.ErrUndefinedMethod)
	v, assigned := obj.Peek("secret")
	assert.True(t, assigned)
	assert.Equal(t, "s3cret", v)
}

// TestWrap_ByValue verifies non-pointer structs wrap too.
func TestWrap_ByValue(t *testing.T) {
	cache.reset()

	obj, err := Wrap(account{Owner: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", obj.MustCall("getOwner"))
}

// TestWrap_Invalid verifies nil pointers and non-structs are rejected.
func TestWrap_Invalid(t *testing.T) {
	_, err := Wrap((*account)(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil pointer")

	_, err = Wrap(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a struct type")
}

// TestCache_Concurrent verifies concurrent first access builds once.
func TestCache_Concurrent(t *testing.T) {
	cache.reset()

	results := make(chan *props.CompiledSchema, 8)
	for i := 0; i < 8; i++ {
		go func() {
			cs, err := For[account]()
			if err != nil {
				results <- nil
				return
			}
			results <- cs
		}()
	}

	first := <-results
	require.NotNil(t, first)
	for i := 1; i < 8; i++ {
		assert.Same(t, first, <-results)
	}
}
