package codec

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/milanbella/sa-oauthdb/errs"
	"github.com/milanbella/sa-oauthdb/model"
	"github.com/milanbella/sa-oauthdb/scope"
)

type encodedRecord struct {
	ClientID         string `json:"clientId"`
	UserID           string `json:"userId"`
	Email            string `json:"email"`
	Scope            string `json:"scope"`
	Token            string `json:"token"`
	Type             string `json:"type"`
	ExpiresAt        int64  `json:"expiresAt"`
	CreatedAt        int64  `json:"createdAt,omitempty"`
	ProfileChangedAt int64  `json:"profileChangedAt"`
}

// decodedRecord uses pointers so missing fields can be told apart from
// empty ones.
type decodedRecord struct {
	ClientID         *string         `json:"clientId"`
	UserID           *string         `json:"userId"`
	Email            *string         `json:"email"`
	Scope            *string         `json:"scope"`
	Token            *string         `json:"token"`
	Type             *string         `json:"type"`
	ExpiresAt        json.RawMessage `json:"expiresAt"`
	CreatedAt        json.RawMessage `json:"createdAt"`
	ProfileChangedAt json.RawMessage `json:"profileChangedAt"`
}

// Encode renders an access token as its JSON wire record. The token field
// carries the hex token id; the raw secret is never written.
func Encode(t *model.AccessToken) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("encode access token: token is nil")
	}
	if len(t.TokenID) == 0 {
		return nil, fmt.Errorf("encode access token: token id is required")
	}
	tokenType := t.Type
	if tokenType == "" {
		tokenType = model.TokenTypeBearer
	}

	rec := encodedRecord{
		ClientID:  hex.EncodeToString(t.ClientID),
		UserID:    hex.EncodeToString(t.UserID),
		Email:     t.Email,
		Scope:     t.Scope.String(),
		Token:     hex.EncodeToString(t.TokenID),
		Type:      tokenType,
		ExpiresAt: toMillis(t.ExpiresAt),
		CreatedAt: toMillis(t.CreatedAt),
	}
	rec.ProfileChangedAt = toMillis(t.ProfileChangedAt)

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode access token: %w", err)
	}
	return data, nil
}

// Decode parses a JSON wire record. Bad hex, bad timestamps and missing
// required fields yield errs.ErrMalformedRecord.
func Decode(data []byte) (*model.AccessToken, error) {
	var rec decodedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, malformed("invalid json: %v", err)
	}

	switch {
	case rec.ClientID == nil:
		return nil, malformed("missing clientId")
	case rec.UserID == nil:
		return nil, malformed("missing userId")
	case rec.Token == nil:
		return nil, malformed("missing token")
	case rec.Scope == nil:
		return nil, malformed("missing scope")
	case rec.Type == nil:
		return nil, malformed("missing type")
	case isAbsent(rec.ExpiresAt):
		return nil, malformed("missing expiresAt")
	}

	clientID, err := hex.DecodeString(*rec.ClientID)
	if err != nil {
		return nil, malformed("clientId: %v", err)
	}
	userID, err := hex.DecodeString(*rec.UserID)
	if err != nil {
		return nil, malformed("userId: %v", err)
	}
	tokenID, err := hex.DecodeString(*rec.Token)
	if err != nil {
		return nil, malformed("token: %v", err)
	}

	expiresAt, err := parseTimestamp(rec.ExpiresAt)
	if err != nil {
		return nil, malformed("expiresAt: %v", err)
	}
	createdAt, err := parseTimestamp(rec.CreatedAt)
	if err != nil {
		return nil, malformed("createdAt: %v", err)
	}
	profileChangedAt, err := parseTimestamp(rec.ProfileChangedAt)
	if err != nil {
		return nil, malformed("profileChangedAt: %v", err)
	}

	t := &model.AccessToken{
		TokenID:          tokenID,
		ClientID:         clientID,
		UserID:           userID,
		Scope:            scope.FromString(*rec.Scope),
		Type:             *rec.Type,
		ExpiresAt:        expiresAt,
		CreatedAt:        createdAt,
		ProfileChangedAt: profileChangedAt,
	}
	if rec.Email != nil {
		t.Email = *rec.Email
	}
	return t, nil
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errs.ErrMalformedRecord, fmt.Sprintf(format, args...))
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// toMillis maps the zero time to 0.
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// parseTimestamp accepts epoch milliseconds or an ISO-8601 string. Absent
// values and 0 decode to the zero time.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if isAbsent(raw) {
		return time.Time{}, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromMillis(ms), nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, err
		}
		return t.UTC(), nil
	}

	if ms, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return fromMillis(ms), nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a timestamp: %s", raw)
	}
	return fromMillis(int64(f)), nil
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
