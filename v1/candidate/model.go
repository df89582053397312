package candidate

// Tag sources an actor can be matched through.
const (
	SourceInterest = "interest"
	SourceSkill    = "skill"
)

// TagSources lists every source the resolver reads.
var TagSources = []string{SourceInterest, SourceSkill}

// TagMatch links an actor to a target through one shared tag. The four
// identifying columns are unique together.
type TagMatch struct {
	ID        int64  `gorm:"primaryKey"`
	ActorID   int64  `gorm:"not null;uniqueIndex:idx_tag_matches_unique,priority:1"`
	TargetID  int64  `gorm:"not null;uniqueIndex:idx_tag_matches_unique,priority:2"`
	TagSource string `gorm:"size:16;not null;uniqueIndex:idx_tag_matches_unique,priority:3"`
	TagID     int64  `gorm:"not null;uniqueIndex:idx_tag_matches_unique,priority:4"`
}

// TableName implements gorm's Tabler.
func (TagMatch) TableName() string { return "tag_matches" }

// Match is one tag-match row of an actor together with the target's label.
// Label is empty when the target row is missing.
type Match struct {
	TargetID  int64
	TagSource string
	Label     string
}
