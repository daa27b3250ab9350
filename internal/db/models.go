package db

import (
	"time"
)

// Role is the self-declared mentorship role of a user.
type Role string

const (
	RoleMentor  Role = "mentor"
	RoleStudent Role = "student"
)

// SwipeStatus is the state of one directional swipe.
type SwipeStatus string

const (
	StatusLiked   SwipeStatus = "liked"
	StatusPassed  SwipeStatus = "passed"
	StatusMatched SwipeStatus = "matched"
)

// User table
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:student" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Profile       *Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	ProjectsOwned []Project `gorm:"foreignKey:OwnerID" json:"projects_owned,omitempty"`
}

// Profile holds the free-text fields shown on a candidate card.
type Profile struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Skills    string    `gorm:"type:text" json:"skills"`
	Interests string    `gorm:"type:text" json:"interests"`
	Major     string    `gorm:"size:128" json:"major"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Swipe is one actor's decision about one candidate.
//
// Unique index idx_swipe_actor_candidate(actor_id, candidate_id)
//   - at most one row per ordered pair
//   - O(1) reciprocal lookup for promotion
//
// Index idx_swipe_actor_status(actor_id, status) backs the matched-pairs listing.
type Swipe struct {
	ID          uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID     uint64      `gorm:"not null;uniqueIndex:idx_swipe_actor_candidate,priority:1;index:idx_swipe_actor_status,priority:1" json:"user_id"`
	CandidateID uint64      `gorm:"not null;uniqueIndex:idx_swipe_actor_candidate,priority:2" json:"candidate_id"`
	Status      SwipeStatus `gorm:"size:16;not null;index:idx_swipe_actor_status,priority:2" json:"status"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Candidate *User `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}

// SwipePairLock serializes swipes between the same two users.
// LowID < HighID; the row is created on first contact and only ever locked afterwards.
type SwipePairLock struct {
	LowID     uint64    `gorm:"primaryKey;autoIncrement:false"`
	HighID    uint64    `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Project is a collaboration board owned by one user.
type Project struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Tags        []string   `gorm:"serializer:json;type:text" json:"tags"`
	OwnerID     uint64     `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []User `gorm:"many2many:project_members" json:"members,omitempty"`
}

// ProjectMember is the join row between Project and User.
type ProjectMember struct {
	ProjectID uint64    `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint64    `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ForumPost is a discussion thread.
type ForumPost struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments      []ForumComment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CommentsCount int64          `gorm:"-" json:"comments_count"`
}

// ForumComment is a reply on a ForumPost.
type ForumComment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"not null;index" json:"post_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Message is a direct chat message. Delivery is polled.
type Message struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uint64    `gorm:"not null;index:idx_message_pair,priority:1" json:"sender_id"`
	ReceiverID uint64    `gorm:"not null;index:idx_message_pair,priority:2;index" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AllModels lists every table managed by AutoMigrate.
func AllModels() []any {
	return []any{
		&User{}, &Profile{}, &Swipe{}, &SwipePairLock{},
		&Project{}, &ForumPost{}, &ForumComment{}, &Message{},
	}
}
