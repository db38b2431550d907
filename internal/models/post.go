package models

import (
	"time"
)

// Guess values for posts (the hidden claim) and votes.
const (
	GuessTruth = "truth"
	GuessBluff = "bluff"
)

// Post is one user's photo + claim for a round. Actual is write-once at
// creation and must stay hidden from readers until IsRevealed flips; the
// settlement engine is the only writer of IsRevealed.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Pid         string `gorm:"uniqueIndex;size:12;not null" json:"pid"`
	AuthorID    uint   `gorm:"not null;index;uniqueIndex:idx_author_round" json:"author_id"`
	Author      User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	RoundID     uint   `gorm:"not null;index;uniqueIndex:idx_author_round" json:"round_id"`
	Round       Round  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	ImageURL    string `gorm:"not null" json:"image_url"`
	ImageID     string `gorm:"size:40" json:"-"`
	Caption     string `gorm:"size:500" json:"caption"`
	Actual      string `gorm:"size:8;not null" json:"-"` // truth or bluff, exposed only after reveal
	IsRevealed  bool   `gorm:"default:false;index" json:"is_revealed"`
	RevealedAt  *int64 `json:"revealed_at,omitempty"`
	PostDate    string `gorm:"size:10;index" json:"post_date"`
	StakedChips int    `gorm:"default:0" json:"staked_chips"`
	ChipPot     int    `gorm:"default:0" json:"chip_pot"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Not database columns, filled by queries
	VoteCount    int `gorm:"-" json:"vote_count"`
	CommentCount int `gorm:"-" json:"comment_count"`

	// Actual, copied out only once the post is revealed
	RevealedActual string `gorm:"-" json:"actual,omitempty"`
}

// Publicize copies Actual into the serialized RevealedActual field for posts
// that have been revealed. Call before returning a post to any reader.
func (p *Post) Publicize() {
	if p.IsRevealed {
		p.RevealedActual = p.Actual
	}
}
