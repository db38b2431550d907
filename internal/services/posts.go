package services

import (
	"errors"
	"os"
	"time"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/schedule"
	"bluffpot/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrOutsidePostingWindow = errors.New("outside posting window")
	ErrAlreadyPosted        = errors.New("already posted for this round")
	ErrInvalidGuess         = errors.New("guess must be truth or bluff")
)

// Feed pagination bounds. The author-filtered feed scans unfiltered pages and
// filters in process, so both the page size and the number of scanned pages
// are capped.
const (
	defaultFeedPageSize  = 20
	maxFeedPageSize      = 50
	feedScanMultiplier   = 3
	defaultFeedScanPages = 5
)

func feedScanPages() int {
	if n := utils.StringToInt(os.Getenv("FEED_SCAN_PAGES")); n > 0 {
		return n
	}
	return defaultFeedScanPages
}

// CreatePost creates the author's post for a round. Enforces the normalized
// posting window, one post per (author, round), and stake validation; a stake
// is debited with its ledger entry in the same transaction as the insert.
func CreatePost(authorID, roundID uint, imageURL, imageID, caption, actual string, stake int) (*models.Post, error) {
	if actual != models.GuessTruth && actual != models.GuessBluff {
		return nil, ErrInvalidGuess
	}
	if err := ValidateStake(stake); err != nil {
		return nil, err
	}

	nowMs := time.Now().UnixMilli()
	var post models.Post

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var round models.Round
		if err := tx.First(&round, roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoundNotFound
			}
			return err
		}
		if !schedule.InPostingWindow(nowMs, round.PostWindowStart, round.PostWindowEnd, round.RevealTime) {
			return ErrOutsidePostingWindow
		}

		var existing models.Post
		err := tx.Where("author_id = ? AND round_id = ?", authorID, roundID).First(&existing).Error
		if err == nil {
			return ErrAlreadyPosted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		post = models.Post{
			Pid:         utils.NewPid(),
			AuthorID:    authorID,
			RoundID:     roundID,
			ImageURL:    imageURL,
			ImageID:     imageID,
			Caption:     utils.SanitizeText(caption),
			Actual:      actual,
			IsRevealed:  false,
			PostDate:    round.Date,
			StakedChips: stake,
			ChipPot:     stake,
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		if stake > 0 {
			return DebitChips(tx, authorID, stake, models.ReasonPostStake, &post.ID, nil, nowMs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByPid loads one post by public id with its author, actual hidden
// unless revealed.
func GetPostByPid(pid string) (*models.Post, error) {
	var post models.Post
	if err := db.DB.Preload("Author").Where("pid = ?", pid).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	attachPostCounts(&post)
	post.Publicize()
	return &post, nil
}

// GetMyPostForRound returns the user's post for a round, nil if none.
func GetMyPostForRound(userID, roundID uint) (*models.Post, error) {
	var post models.Post
	err := db.DB.Where("author_id = ? AND round_id = ?", userID, roundID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	post.Publicize()
	return &post, nil
}

// FeedPage is one page of the cursor-paginated feed.
type FeedPage struct {
	Posts      []models.Post `json:"posts"`
	NextCursor uint          `json:"next_cursor,omitempty"`
}

// ListFeed returns a feed page ordered newest first. cursor is the last post
// id of the previous page (0 for the first page). A non-empty authorIDs
// restricts the feed to those authors via a bounded scan: at most
// feedScanPages pages are examined per call, and the cursor resumes the scan.
func ListFeed(cursor uint, limit int, authorIDs []uint) (*FeedPage, error) {
	if limit <= 0 {
		limit = defaultFeedPageSize
	}
	if limit > maxFeedPageSize {
		limit = maxFeedPageSize
	}

	if len(authorIDs) == 0 {
		posts, err := feedPageAfter(cursor, limit+1)
		if err != nil {
			return nil, err
		}
		page := &FeedPage{Posts: posts}
		if len(posts) > limit {
			page.Posts = posts[:limit]
			page.NextCursor = posts[limit-1].ID
		}
		publicizeAll(page.Posts)
		return page, nil
	}

	// Author-filtered: scan wider unfiltered pages, filter in process, and cap
	// the number of scanned pages. The returned cursor resumes the scan.
	scanSize := limit * feedScanMultiplier
	if scanSize < 30 {
		scanSize = 30
	}
	if scanSize > 200 {
		scanSize = 200
	}

	allowed := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		allowed[id] = true
	}

	page := &FeedPage{}
	for scans := 0; scans < feedScanPages(); scans++ {
		posts, err := feedPageAfter(cursor, scanSize)
		if err != nil {
			return nil, err
		}
		for i := range posts {
			if allowed[posts[i].AuthorID] && len(page.Posts) < limit {
				page.Posts = append(page.Posts, posts[i])
			}
		}
		if len(posts) < scanSize {
			// Reached the oldest post, nothing left to resume.
			cursor = 0
			break
		}
		cursor = posts[len(posts)-1].ID
		if len(page.Posts) >= limit {
			break
		}
	}

	page.NextCursor = cursor
	publicizeAll(page.Posts)
	return page, nil
}

func feedPageAfter(cursor uint, size int) ([]models.Post, error) {
	q := db.DB.Preload("Author").Order("id DESC").Limit(size)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var posts []models.Post
	err := q.Find(&posts).Error
	return posts, err
}

func publicizeAll(posts []models.Post) {
	for i := range posts {
		attachPostCounts(&posts[i])
		posts[i].Publicize()
	}
}

// ListPostsByRound returns a round's posts, newest first.
func ListPostsByRound(roundID uint, limit int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var posts []models.Post
	if err := db.DB.Preload("Author").
		Where("round_id = ?", roundID).
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	for i := range posts {
		attachPostCounts(&posts[i])
		posts[i].Publicize()
	}
	return posts, nil
}

// ListPostsByAuthor returns a user's posts for their profile, newest first.
func ListPostsByAuthor(authorID uint, limit int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var posts []models.Post
	if err := db.DB.Where("author_id = ?", authorID).
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	for i := range posts {
		attachPostCounts(&posts[i])
		posts[i].Publicize()
	}
	return posts, nil
}

func attachPostCounts(post *models.Post) {
	var votes, comments int64
	db.DB.Model(&models.Vote{}).Where("post_id = ?", post.ID).Count(&votes)
	db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
	post.VoteCount = int(votes)
	post.CommentCount = int(comments)
}
