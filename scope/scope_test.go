package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString_SplitsOnWhitespace(t *testing.T) {
	s := FromString("profile  openid\tprofile:email ")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("profile"))
	assert.True(t, s.Contains("openid"))
	assert.True(t, s.Contains("profile:email"))
}

func TestFromString_Empty(t *testing.T) {
	s := FromString("")
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.String())
}

func TestString_IsOrderIndependent(t *testing.T) {
	a := New("profile", "openid", "https://identity.example.com/apps/sync")
	b := New("https://identity.example.com/apps/sync", "profile", "openid")
	assert.Equal(t, a.String(), b.String())
	assert.True(t, a.Equal(b))
}

func TestNew_DropsDuplicatesAndBlanks(t *testing.T) {
	s := New("profile", "", "profile", "  ")
	assert.Equal(t, []string{"profile"}, s.Values())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want bool
	}{
		{"both empty", Set{}, FromString(""), true},
		{"same", New("a", "b"), New("b", "a"), true},
		{"subset", New("a"), New("a", "b"), false},
		{"disjoint", New("a"), New("b"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestZeroValue_Add(t *testing.T) {
	var s Set
	s.Add("profile")
	assert.True(t, s.Contains("profile"))
}
