package models

// User is the minimal account view the engine needs: notification target and
// meeting attendee data. Account management lives elsewhere.
type User struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	FCMToken string `bson:"fcm_token,omitempty" json:"-"`
}

// Client is a coach's individual client.
type Client struct {
	ID      string `bson:"id" json:"id"`
	CoachID string `bson:"coach_id" json:"coachId"`
	UserID  string `bson:"user_id" json:"userId"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
}

// GroupMember is one client within a group.
type GroupMember struct {
	ClientID string `bson:"client_id" json:"clientId"`
	UserID   string `bson:"user_id" json:"userId"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
}

// Group is a coach's client group with embedded membership.
type Group struct {
	ID      string        `bson:"id" json:"id"`
	CoachID string        `bson:"coach_id" json:"coachId"`
	Name    string        `bson:"name" json:"name"`
	Members []GroupMember `bson:"members" json:"members"`
}
