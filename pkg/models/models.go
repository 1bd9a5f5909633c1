package models

import (
	"encoding/json"
	"fmt"
)

type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderUnset || g == GenderMale || g == GenderFemale
}

// FieldID names an input of the registration form. The values double as
// the JSON keys sent to the registration endpoint.
type FieldID string

const (
	FieldFullName        FieldID = "fullname"
	FieldUsername        FieldID = "username"
	FieldEmail           FieldID = "email"
	FieldPassword        FieldID = "password"
	FieldConfirmPassword FieldID = "confpassword"
	FieldGender          FieldID = "gender"
)

type RegistrationForm struct {
	FullName        string `json:"fullname" form:"fullname"`
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confpassword" form:"confpassword"`
	Gender          Gender `json:"gender" form:"gender"`
}

// PasswordsMatch reports whether the confirmation equals the password.
func (f RegistrationForm) PasswordsMatch() bool {
	return f.Password == f.ConfirmPassword
}

// RegisterResponse is the payload returned by the registration endpoint.
// Fields other than success and message are session data owned by the
// backend; they are kept verbatim in Extra and written back unchanged.
type RegisterResponse struct {
	Success bool
	Message string
	Extra   map[string]json.RawMessage
}

func (r RegisterResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	success, err := json.Marshal(r.Success)
	if err != nil {
		return nil, err
	}
	message, err := json.Marshal(r.Message)
	if err != nil {
		return nil, err
	}
	out["success"] = success
	out["message"] = message
	return json.Marshal(out)
}

func (r *RegisterResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = RegisterResponse{}
	if v, ok := raw["success"]; ok {
		if err := json.Unmarshal(v, &r.Success); err != nil {
			return fmt.Errorf("decode success: %w", err)
		}
		delete(raw, "success")
	}
	if v, ok := raw["message"]; ok {
		// backends occasionally send null here
		if string(v) != "null" {
			if err := json.Unmarshal(v, &r.Message); err != nil {
				return fmt.Errorf("decode message: %w", err)
			}
		}
		delete(raw, "message")
	}
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

// Field returns a pass-through session field decoded into dst.
func (r RegisterResponse) Field(name string, dst any) bool {
	v, ok := r.Extra[name]
	if !ok {
		return false
	}
	return json.Unmarshal(v, dst) == nil
}

type ErrorPageData struct {
	Title       string
	StatusCode  int
	Message     string
	Description string
	Technical   string
	RetryURL    string
	ErrorID     string
}
