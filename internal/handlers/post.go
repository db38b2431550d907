package handlers

import (
	"net/http"
	"strings"

	"bluffpot/internal/services"
	"bluffpot/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// Create accepts a multipart post submission: the photo, the round, the
// hidden truth/bluff claim and an optional stake. The photo is uploaded to
// blob storage first; everything else happens in one transaction.
func (h *PostHandler) Create(c *gin.Context) {
	user, _ := CurrentUser(c)

	roundID := utils.StringToUint(c.PostForm("round_id"))
	if roundID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "round_id is required"})
		return
	}
	actual := c.PostForm("actual")
	caption := c.PostForm("caption")
	stake := utils.StringToInt(c.PostForm("stake"))

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "an image is required"})
		return
	}
	defer file.Close()

	upload, err := services.UploadPostImage(file, header)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}

	post, err := services.CreatePost(user.ID, roundID, upload.URL, upload.ID, caption, actual, stake)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}

	post.Publicize()
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// Detail returns one post by public id; the hidden value appears only after
// reveal.
func (h *PostHandler) Detail(c *gin.Context) {
	post, err := services.GetPostByPid(c.Param("pid"))
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Mine returns the current user's post for a round, if any.
func (h *PostHandler) Mine(c *gin.Context) {
	user, _ := CurrentUser(c)
	roundID := utils.StringToUint(c.Param("roundId"))
	post, err := services.GetMyPostForRound(user.ID, roundID)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Feed is the cursor-paginated feed. An optional comma-separated authors
// parameter restricts it to those author ids (friends feed).
func (h *PostHandler) Feed(c *gin.Context) {
	cursor := utils.StringToUint(c.Query("cursor"))
	limit := atoiDefault(c.Query("limit"), 20)

	var authorIDs []uint
	if authors := c.Query("authors"); authors != "" {
		for _, part := range strings.Split(authors, ",") {
			if id := utils.StringToUint(strings.TrimSpace(part)); id != 0 {
				authorIDs = append(authorIDs, id)
			}
		}
		// Own posts always belong in a filtered feed.
		if user, ok := CurrentUser(c); ok {
			authorIDs = append(authorIDs, user.ID)
		}
	}

	page, err := services.ListFeed(cursor, limit, authorIDs)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ByAuthor lists a user's posts for their profile.
func (h *PostHandler) ByAuthor(c *gin.Context) {
	authorID := utils.StringToUint(c.Param("id"))
	posts, err := services.ListPostsByAuthor(authorID, atoiDefault(c.Query("limit"), 30))
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
