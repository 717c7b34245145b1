package models

import "time"

// Integration is a coach's connection record for an external provider. Token
// acquisition and refresh happen outside this service; the engine only consumes
// whatever access token is currently stored.
type Integration struct {
	CoachID      string    `bson:"coach_id" json:"coachId"`
	Platform     string    `bson:"platform" json:"platform"`
	AccessToken  string    `bson:"access_token" json:"-"`
	RefreshToken string    `bson:"refresh_token,omitempty" json:"-"`
	TokenExpiry  time.Time `bson:"token_expiry,omitempty" json:"tokenExpiry,omitempty"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// Connected reports whether the integration can currently be used.
func (i *Integration) Connected() bool {
	return i != nil && i.Active && i.AccessToken != ""
}
