package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingHandle = errors.New("record has no handle")

// User is the signed-in account. Handle is always set; everything else the
// backend returned with the login response lives in Profile and is written
// back verbatim when the user is persisted.
type User struct {
	Handle string
	// Idol is the idol handle the backend remembered for this account.
	Idol string
	// Token is the backend session token, when one was issued.
	Token   string
	Profile map[string]any
}

// NewUser merges profile into a User. Known keys are lifted into fields;
// a non-string idol or token is ignored.
func NewUser(handle string, profile map[string]any) *User {
	u := &User{Handle: handle, Profile: map[string]any{}}
	for k, v := range profile {
		switch k {
		case "handle":
		case "idol":
			if s, ok := v.(string); ok {
				u.Idol = s
			}
		case "token":
			if s, ok := v.(string); ok {
				u.Token = s
			}
		default:
			u.Profile[k] = v
		}
	}
	return u
}

func (u User) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(u.Profile)+3)
	for k, v := range u.Profile {
		m[k] = v
	}
	m["handle"] = u.Handle
	if u.Idol != "" {
		m["idol"] = u.Idol
	}
	if u.Token != "" {
		m["token"] = u.Token
	}
	return json.Marshal(m)
}

func (u *User) UnmarshalJSON(b []byte) error {
	m, handle, err := decodeHandleRecord(b)
	if err != nil {
		return err
	}
	*u = *NewUser(handle, m)
	return nil
}

// Idol is the coder the user measures themselves against. Only Handle is
// required; search results add rating and rank.
type Idol struct {
	Handle    string
	Rating    int
	MaxRating int
	Rank      string
	Extra     map[string]any
}

// NewIdol merges info into an Idol. Numeric fields accept any JSON number.
func NewIdol(handle string, info map[string]any) *Idol {
	i := &Idol{Handle: handle, Extra: map[string]any{}}
	for k, v := range info {
		switch k {
		case "handle":
		case "rating":
			i.Rating = toInt(v)
		case "maxRating":
			i.MaxRating = toInt(v)
		case "rank":
			if s, ok := v.(string); ok {
				i.Rank = s
			}
		default:
			i.Extra[k] = v
		}
	}
	return i
}

func (i Idol) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(i.Extra)+4)
	for k, v := range i.Extra {
		m[k] = v
	}
	m["handle"] = i.Handle
	if i.Rating != 0 {
		m["rating"] = i.Rating
	}
	if i.MaxRating != 0 {
		m["maxRating"] = i.MaxRating
	}
	if i.Rank != "" {
		m["rank"] = i.Rank
	}
	return json.Marshal(m)
}

func (i *Idol) UnmarshalJSON(b []byte) error {
	m, handle, err := decodeHandleRecord(b)
	if err != nil {
		return err
	}
	*i = *NewIdol(handle, m)
	return nil
}

// Coder is one coder search suggestion.
type Coder struct {
	Handle string `json:"handle"`
	Rating int    `json:"rating"`
	Rank   string `json:"rank"`
}

// Info returns the coder's fields in the shape SelectIdol expects.
func (c Coder) Info() map[string]any {
	info := map[string]any{}
	if c.Rating != 0 {
		info["rating"] = c.Rating
	}
	if c.Rank != "" {
		info["rank"] = c.Rank
	}
	return info
}

func decodeHandleRecord(b []byte) (map[string]any, string, error) {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, "", err
	}
	if m == nil {
		return nil, "", ErrMissingHandle
	}
	handle, ok := m["handle"].(string)
	if !ok || handle == "" {
		return nil, "", fmt.Errorf("decode record: %w", ErrMissingHandle)
	}
	return m, handle, nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	}
	return 0
}
