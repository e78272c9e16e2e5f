// Package user implements the immutable account record and its validation
// rules. A User satisfies record.Record, so the generic store in
// internal/state can synchronize it without knowing anything about
// accounts.
package user

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rosterhq/roster/internal/record"
)

// Field names recognized by UpdateField. They match the JSON keys used by
// the accounts API.
const (
	FieldID          = "user_id"
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldPassword    = "password"
	FieldNewPassword = "newPassword"
	FieldReCaptcha   = "reCaptchaResponse"
	FieldRoles       = "roles"
)

// Roles assignable through the admin view. The server stores roles as a
// comma-separated string; the client keeps them as an explicit set so that
// membership checks are exact rather than substring-based.
const (
	RoleAdmin         = "Admin"
	RoleTemplateEdit  = "TemplateEdit"
	RoleInterviewEdit = "InterviewEdit"
)

// rolesSeparator is the wire encoding the server expects.
const rolesSeparator = ", "

// scalarFields are the plain string fields UpdateField will accept.
var scalarFields = map[string]bool{
	FieldID:          true,
	FieldUsername:    true,
	FieldEmail:       true,
	FieldPhone:       true,
	FieldFirstName:   true,
	FieldLastName:    true,
	FieldPassword:    true,
	FieldNewPassword: true,
	FieldReCaptcha:   true,
}

// User is an immutable account record. Every mutating operation returns a
// new User and leaves the receiver untouched, so snapshots of application
// state can be shared freely.
type User struct {
	fields map[string]string
	prefs  map[string]string
	roles  []string
	meta   record.Meta
}

// New returns an empty user with all metadata flags clear.
func New() User {
	return User{}
}

// FromData builds a user from a decoded JSON payload, typically the body of
// a login, hydrate or list response. Unknown keys are ignored; missing keys
// leave the field empty. Metadata starts all-false.
func FromData(data map[string]any) User {
	u := User{}
	for name := range scalarFields {
		if v, ok := data[name]; ok && v != nil {
			u = u.setField(name, fmt.Sprint(v))
		}
	}
	if v, ok := data[FieldRoles]; ok && v != nil {
		u.roles = parseRoles(fmt.Sprint(v))
	}
	if v, ok := data["preferences"]; ok {
		if m, ok := v.(map[string]any); ok && len(m) > 0 {
			u.prefs = make(map[string]string, len(m))
			for k, pv := range m {
				u.prefs[k] = fmt.Sprint(pv)
			}
		}
	}
	return u
}

// setField writes a scalar field without touching metadata.
func (u User) setField(name, value string) User {
	u = u.clone()
	if u.fields == nil {
		u.fields = make(map[string]string)
	}
	u.fields[name] = value
	return u
}

func (u User) clone() User {
	u.fields = maps.Clone(u.fields)
	u.prefs = maps.Clone(u.prefs)
	u.roles = slices.Clone(u.roles)
	return u
}

// ID returns the server-assigned identity, empty until assigned.
func (u User) ID() string { return u.fields[FieldID] }

// Meta returns the record's synchronization flags.
func (u User) Meta() record.Meta { return u.meta }

// WithMeta returns a copy carrying the given flags.
func (u User) WithMeta(m record.Meta) User {
	u = u.clone()
	u.meta = m
	return u
}

// Field returns the value of a scalar field, empty when unset.
func (u User) Field(name string) string { return u.fields[name] }

// Username returns the account name.
func (u User) Username() string { return u.fields[FieldUsername] }

// Email returns the account email address.
func (u User) Email() string { return u.fields[FieldEmail] }

// Phone returns the account phone number.
func (u User) Phone() string { return u.fields[FieldPhone] }

// Password returns the transient password field.
func (u User) Password() string { return u.fields[FieldPassword] }

// NewPassword returns the transient replacement password field.
func (u User) NewPassword() string { return u.fields[FieldNewPassword] }

// ReCaptchaResponse returns the transient registration challenge response.
func (u User) ReCaptchaResponse() string { return u.fields[FieldReCaptcha] }

// preferencePrefix addresses preference entries through UpdateField, e.g.
// "preferences.theme".
const preferencePrefix = "preferences."

// UpdateField returns a copy with the named field replaced and the dirty
// flag set. Field names that are not recognized return the record
// unchanged, matching the server's JSON contract: the UI binds inputs by
// field name and a typo should not corrupt unrelated state.
func (u User) UpdateField(field, value string) User {
	if key, ok := strings.CutPrefix(field, preferencePrefix); ok && key != "" {
		return u.WithPreference(key, value)
	}
	switch {
	case scalarFields[field]:
		u = u.setField(field, value)
	case field == FieldRoles:
		u = u.clone()
		u.roles = parseRoles(value)
	default:
		return u
	}
	u.meta = u.meta.SetDirty()
	return u
}

// Preference returns a single preference value, empty when unset.
func (u User) Preference(key string) string { return u.prefs[key] }

// Preferences returns a copy of the preference map.
func (u User) Preferences() map[string]string {
	if len(u.prefs) == 0 {
		return nil
	}
	return maps.Clone(u.prefs)
}

// WithPreference returns a copy with the preference set and the dirty flag
// raised.
func (u User) WithPreference(key, value string) User {
	u = u.clone()
	if u.prefs == nil {
		u.prefs = make(map[string]string)
	}
	u.prefs[key] = value
	u.meta = u.meta.SetDirty()
	return u
}

// Roles returns a sorted copy of the role set.
func (u User) Roles() []string { return slices.Clone(u.roles) }

// HasRole reports exact membership in the role set.
func (u User) HasRole(role string) bool {
	return slices.Contains(u.roles, role)
}

// WithRole returns a copy with the role added and the dirty flag raised.
// Adding a role the user already has only marks the record dirty.
func (u User) WithRole(role string) User {
	u = u.clone()
	if !slices.Contains(u.roles, role) {
		u.roles = append(u.roles, role)
		slices.Sort(u.roles)
	}
	u.meta = u.meta.SetDirty()
	return u
}

// WithoutRole returns a copy with the role removed and the dirty flag
// raised.
func (u User) WithoutRole(role string) User {
	u = u.clone()
	u.roles = slices.DeleteFunc(u.roles, func(r string) bool { return r == role })
	u.meta = u.meta.SetDirty()
	return u
}

// AfterCreateSuccess clears the fields that must not outlive registration:
// the server assigns the default role itself, and credentials are re-entered
// at login.
func (u User) AfterCreateSuccess() User {
	u = u.clone()
	u.roles = nil
	delete(u.fields, FieldPassword)
	delete(u.fields, FieldReCaptcha)
	return u
}

// AfterUpdateSuccess clears the password fields so the next edit session
// has to present credentials again.
func (u User) AfterUpdateSuccess() User {
	u = u.clone()
	delete(u.fields, FieldPassword)
	delete(u.fields, FieldNewPassword)
	return u
}

// Equal reports structural equality: metadata flags plus field data.
func (u User) Equal(o User) bool {
	return u.meta == o.meta &&
		maps.Equal(u.fields, o.fields) &&
		maps.Equal(u.prefs, o.prefs) &&
		slices.Equal(u.roles, o.roles)
}

// Data returns the record's persistent fields in payload form, the same
// shape FromData accepts. Transient fields (passwords, reCAPTCHA) are
// excluded.
func (u User) Data() map[string]any {
	data := map[string]any{}
	for name, value := range u.fields {
		switch name {
		case FieldPassword, FieldNewPassword, FieldReCaptcha:
		default:
			data[name] = value
		}
	}
	if len(u.roles) > 0 {
		data[FieldRoles] = joinRoles(u.roles)
	}
	if len(u.prefs) > 0 {
		prefs := make(map[string]any, len(u.prefs))
		for k, v := range u.prefs {
			prefs[k] = v
		}
		data["preferences"] = prefs
	}
	return data
}

// CreatePayload builds the JSON body for registration.
func (u User) CreatePayload() map[string]any {
	body := map[string]any{
		FieldUsername:  u.Username(),
		FieldEmail:     u.Email(),
		FieldPhone:     u.Phone(),
		FieldPassword:  u.Password(),
		FieldReCaptcha: u.ReCaptchaResponse(),
	}
	if len(u.prefs) > 0 {
		body["preferences"] = maps.Clone(u.prefs)
	}
	if len(u.roles) > 0 {
		body[FieldRoles] = joinRoles(u.roles)
	}
	return body
}

// UpdatePayload builds the JSON body for an account update. The optional
// replacement password rides along only when set.
func (u User) UpdatePayload() map[string]any {
	body := map[string]any{
		FieldUsername: u.Username(),
		FieldEmail:    u.Email(),
		FieldPhone:    u.Phone(),
		FieldPassword: u.Password(),
		FieldRoles:    joinRoles(u.roles),
	}
	if len(u.prefs) > 0 {
		body["preferences"] = maps.Clone(u.prefs)
	}
	if np := u.NewPassword(); np != "" {
		body[FieldNewPassword] = np
	}
	return body
}

func parseRoles(joined string) []string {
	var roles []string
	for part := range strings.SplitSeq(joined, ",") {
		if role := strings.TrimSpace(part); role != "" && !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	slices.Sort(roles)
	return roles
}

func joinRoles(roles []string) string {
	return strings.Join(roles, rolesSeparator)
}
