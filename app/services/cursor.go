package services

import (
	"encoding/base64"
	"encoding/json"

	"wallboard/app/apperrors"
	"wallboard/app/models"
)

// EncodeCursor serializes a feed position as unpadded URL-safe base64 JSON,
// opaque to clients.
func EncodeCursor(c models.FeedCursor) string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a client-supplied cursor. Anything malformed is a
// validation error; cursors are never trusted beyond their shape.
func DecodeCursor(s string) (*models.FeedCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, apperrors.Validation("invalid cursor")
	}
	var c models.FeedCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, apperrors.Validation("invalid cursor")
	}
	return &c, nil
}
