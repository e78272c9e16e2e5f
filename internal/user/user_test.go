package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromData_RoundTrip(t *testing.T) {
	data := map[string]any{
		"user_id":     "U1",
		"username":    "testing",
		"email":       "testing@example.com",
		"phone":       "9195551234",
		"first_name":  "Test",
		"last_name":   "Ing",
		"roles":       "Admin, TemplateEdit",
		"preferences": map[string]any{"theme": "dark"},
	}

	u := FromData(data)

	assert.Equal(t, "U1", u.ID())
	assert.Equal(t, "testing", u.Username())
	assert.Equal(t, "testing@example.com", u.Email())
	assert.Equal(t, "9195551234", u.Phone())
	assert.Equal(t, "Test", u.Field(FieldFirstName))
	assert.Equal(t, "Ing", u.Field(FieldLastName))
	assert.Equal(t, []string{"Admin", "TemplateEdit"}, u.Roles())
	assert.Equal(t, "dark", u.Preference("theme"))
	assert.True(t, u.Meta().Idle(), "hydrated record should start idle")
}

func TestUpdateField_SetsValueAndDirty(t *testing.T) {
	u := New().UpdateField(FieldUsername, "alice")

	assert.Equal(t, "alice", u.Username())
	assert.True(t, u.Meta().Dirty)
	assert.False(t, u.Meta().New)
	assert.False(t, u.Meta().Fetching)
}

func TestUpdateField_UnknownFieldIsNoOp(t *testing.T) {
	u := New().UpdateField(FieldUsername, "alice").WithMeta(New().Meta())

	got := u.UpdateField("shoe_size", "11")
	assert.True(t, got.Equal(u), "unknown field must leave the record unchanged")
	assert.False(t, got.Meta().Dirty)
}

func TestUpdateField_CopyOnWrite(t *testing.T) {
	orig := New().UpdateField(FieldEmail, "a@b.co")
	edited := orig.UpdateField(FieldEmail, "c@d.co")

	assert.Equal(t, "a@b.co", orig.Email(), "original must not be mutated")
	assert.Equal(t, "c@d.co", edited.Email())
}

func TestRoles_ExactMembership(t *testing.T) {
	u := New().WithRole("SuperUser")

	// Substring matches were a latent bug in older clients; membership is
	// exact now.
	assert.True(t, u.HasRole("SuperUser"))
	assert.False(t, u.HasRole("User"))

	u = u.WithRole(RoleAdmin)
	assert.Equal(t, []string{"Admin", "SuperUser"}, u.Roles())
	assert.True(t, u.Meta().Dirty)

	u = u.WithoutRole("SuperUser")
	assert.Equal(t, []string{"Admin"}, u.Roles())
}

func TestAfterCreateSuccess_ResetsTransients(t *testing.T) {
	u := New().
		UpdateField(FieldUsername, "alice").
		UpdateField(FieldPassword, "pass1234!").
		UpdateField(FieldReCaptcha, "tok").
		WithRole(RoleAdmin)

	got := u.AfterCreateSuccess()

	assert.Empty(t, got.Roles(), "server assigns the default role")
	assert.Empty(t, got.Password())
	assert.Empty(t, got.ReCaptchaResponse())
	assert.Equal(t, "alice", got.Username())
}

func TestAfterUpdateSuccess_ClearsPasswords(t *testing.T) {
	u := New().
		UpdateField(FieldPassword, "old5678!").
		UpdateField(FieldNewPassword, "new5678!")

	got := u.AfterUpdateSuccess()

	assert.Empty(t, got.Password())
	assert.Empty(t, got.NewPassword())
}

func TestEqual_ComparesDataAndMeta(t *testing.T) {
	a := New().UpdateField(FieldUsername, "alice")
	b := New().UpdateField(FieldUsername, "alice")
	require.True(t, a.Equal(b))

	assert.False(t, a.Equal(b.UpdateField(FieldEmail, "a@b.co")))
	assert.False(t, a.Equal(b.WithMeta(b.Meta().SetFetching())))
}

func TestValidators(t *testing.T) {
	valid := New().
		UpdateField(FieldUsername, "alice").
		UpdateField(FieldEmail, "alice@example.com").
		UpdateField(FieldPhone, "9195551234").
		UpdateField(FieldPassword, "hunter21!").
		UpdateField(FieldReCaptcha, "tok")

	assert.True(t, valid.NewUserValid())
	assert.True(t, valid.EditUserValid())

	cases := []struct {
		name  string
		u     User
		check func(User) bool
	}{
		{"username too short", valid.UpdateField(FieldUsername, "abc"), User.UsernameValid},
		{"username missing", valid.UpdateField(FieldUsername, ""), User.UsernameValid},
		{"email malformed", valid.UpdateField(FieldEmail, "not-an-email"), User.EmailValid},
		{"phone too short", valid.UpdateField(FieldPhone, "12345"), User.PhoneValid},
		{"phone non-numeric", valid.UpdateField(FieldPhone, "91955512ab"), User.PhoneValid},
		{"password no digit", valid.UpdateField(FieldPassword, "hunterAA!"), User.PasswordValid},
		{"password no symbol", valid.UpdateField(FieldPassword, "hunter221"), User.PasswordValid},
		{"password too short", valid.UpdateField(FieldPassword, "hu21!"), User.PasswordValid},
		{"password bad rune", valid.UpdateField(FieldPassword, "hunter21! "), User.PasswordValid},
		{"new password malformed", valid.UpdateField(FieldNewPassword, "short"), User.NewPasswordValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.check(tc.u))
		})
	}

	t.Run("new password optional", func(t *testing.T) {
		assert.True(t, valid.NewPasswordValid())
	})
	t.Run("registration requires recaptcha", func(t *testing.T) {
		assert.False(t, valid.UpdateField(FieldReCaptcha, "").NewUserValid())
		assert.True(t, valid.UpdateField(FieldReCaptcha, "").EditUserValid())
	})
}

func TestResetCodeValid(t *testing.T) {
	assert.True(t, ResetCodeValid("123456"))
	assert.False(t, ResetCodeValid("12345"))
	assert.False(t, ResetCodeValid("12345a"))
	assert.False(t, ResetCodeValid(""))
}
