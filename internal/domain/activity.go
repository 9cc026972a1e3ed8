package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Activity kinds recorded in the feed. Dispatch on these goes through
// ActivityKindLabels; an unrecognized kind is rejected, never silently
// dropped.
const (
	ActivityCourseCreated        = "course_created"
	ActivityCoursePublished      = "course_published"
	ActivityQuizCreated          = "quiz_created"
	ActivityQuizAttempted        = "quiz_attempted"
	ActivityUserRegistered       = "user_registered"
	ActivityUserSuspended        = "user_suspended"
	ActivityUserActivated        = "user_activated"
	ActivityRecommendationServed = "recommendation_served"
)

var ActivityKindLabels = map[string]string{
	ActivityCourseCreated:        "Course created",
	ActivityCoursePublished:      "Course published",
	ActivityQuizCreated:          "Quiz created",
	ActivityQuizAttempted:        "Quiz attempted",
	ActivityUserRegistered:       "User registered",
	ActivityUserSuspended:        "User suspended",
	ActivityUserActivated:        "User activated",
	ActivityRecommendationServed: "Recommendation served",
}

func KnownActivityKind(kind string) bool {
	_, ok := ActivityKindLabels[kind]
	return ok
}

type Activity struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Kind    string    `gorm:"column:kind;not null;index" json:"kind"`
	ActorID uuid.UUID `gorm:"type:uuid;column:actor_id;index" json:"actor_id"`
	// SubjectID is a string: it may reference a relational row or a graph node.
	SubjectID string         `gorm:"column:subject_id;index" json:"subject_id"`
	Detail    datatypes.JSON `gorm:"column:detail;type:jsonb" json:"detail,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Activity) TableName() string { return "activity" }
