package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TurkiHQ/DevConnecter/internal/domain"
	"github.com/TurkiHQ/DevConnecter/internal/queue"
	"github.com/TurkiHQ/DevConnecter/internal/repo"
)

type upsertProfileReq struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status"`
	GithubUsername *string `json:"githubusername"`
	Skills         *string `json:"skills"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (in *upsertProfileReq) validate() []fieldError {
	var errs []fieldError
	if in.Status == nil || strings.TrimSpace(*in.Status) == "" {
		errs = append(errs, fieldError{Msg: "Status is required", Param: "status"})
	}
	if in.Skills == nil || strings.TrimSpace(*in.Skills) == "" {
		errs = append(errs, fieldError{Msg: "Skills is required", Param: "skills"})
	}
	return errs
}

// UpsertProfile godoc
// @Summary Create or update the caller's profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body upsertProfileReq true "profile fields; absent fields stay untouched"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]any
// @Router /api/profile [post]
func (h *Handler) UpsertProfile(c *gin.Context) {
	uid, ok := subjectID(c)
	if !ok {
		return
	}
	var in upsertProfileReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorsBody([]fieldError{{Msg: "Invalid JSON body"}}))
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errorsBody(errs))
		return
	}

	var skills []string
	if in.Skills != nil {
		skills = domain.ParseSkills(*in.Skills)
	}

	upd := domain.ProfileUpdate{
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Bio:            in.Bio,
		Status:         in.Status,
		GithubUsername: in.GithubUsername,
		Skills:         skills,
		Youtube:        in.Youtube,
		Twitter:        in.Twitter,
		Facebook:       in.Facebook,
		Linkedin:       in.Linkedin,
		Instagram:      in.Instagram,
	}

	existing, err := h.Profiles.FindProfileByUser(c.Request.Context(), uid)
	if err != nil {
		serverError(c, "profile upsert: lookup", err)
		return
	}

	if existing != nil {
		p, err := h.Profiles.UpdateProfileFields(c.Request.Context(), uid, upd)
		if err != nil {
			serverError(c, "profile upsert: update", err)
			return
		}
		c.JSON(http.StatusOK, p)
		return
	}

	p := &domain.Profile{
		UserID:     uid,
		Status:     strings.TrimSpace(*in.Status),
		Skills:     skills,
		Experience: []domain.Experience{},
		Education:  []domain.Education{},
	}
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setStr(&p.Company, in.Company)
	setStr(&p.Website, in.Website)
	setStr(&p.Location, in.Location)
	setStr(&p.Bio, in.Bio)
	setStr(&p.GithubUsername, in.GithubUsername)
	setStr(&p.Social.Youtube, in.Youtube)
	setStr(&p.Social.Twitter, in.Twitter)
	setStr(&p.Social.Facebook, in.Facebook)
	setStr(&p.Social.Linkedin, in.Linkedin)
	setStr(&p.Social.Instagram, in.Instagram)

	if err := h.Profiles.CreateProfile(c.Request.Context(), p); err != nil {
		if err == repo.ErrProfileExists {
			// lost a concurrent create race: re-apply as an update
			updated, uerr := h.Profiles.UpdateProfileFields(c.Request.Context(), uid, upd)
			if uerr != nil {
				serverError(c, "profile upsert: update after race", uerr)
				return
			}
			c.JSON(http.StatusOK, updated)
			return
		}
		serverError(c, "profile upsert: insert", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// MyProfile godoc
// @Summary Current user's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /api/profile/me [get]
func (h *Handler) MyProfile(c *gin.Context) {
	uid, ok := subjectID(c)
	if !ok {
		return
	}
	p, err := h.Profiles.FindProfileByUser(c.Request.Context(), uid)
	if err != nil {
		serverError(c, "profile me", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "There is no profile for this user"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProfiles godoc
// @Summary All profiles
// @Tags profile
// @Produce json
// @Success 200 {array} domain.Profile
// @Router /api/profile [get]
func (h *Handler) ListProfiles(c *gin.Context) {
	ps, err := h.Profiles.ListProfiles(c.Request.Context())
	if err != nil {
		serverError(c, "profile list", err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

// ProfileByUser godoc
// @Summary Profile by user id
// @Tags profile
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /api/profile/user/{id} [get]
func (h *Handler) ProfileByUser(c *gin.Context) {
	// a malformed id is "not found" from the caller's perspective, not a 500
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Profile not found"})
		return
	}
	p, err := h.Profiles.FindProfileByUser(c.Request.Context(), oid)
	if err != nil {
		serverError(c, "profile by user", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteAccount godoc
// @Summary Delete the caller's profile and user
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/profile [delete]
func (h *Handler) DeleteAccount(c *gin.Context) {
	uid, ok := subjectID(c)
	if !ok {
		return
	}
	if err := h.Users.DeleteAccount(c.Request.Context(), uid); err != nil {
		serverError(c, "delete account", err)
		return
	}
	go h.Events.Publish(context.Background(), queue.Exchange, queue.KeyAccountDeleted,
		queue.AccountDeleted{UserID: uid}, requestID(c))

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

type experienceReq struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (in *experienceReq) validate() ([]fieldError, time.Time, *time.Time) {
	var errs []fieldError
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, fieldError{Msg: "Title is required", Param: "title"})
	}
	if strings.TrimSpace(in.Company) == "" {
		errs = append(errs, fieldError{Msg: "Company is required", Param: "company"})
	}
	from, to, dateErrs := parseEntryDates(in.From, in.To)
	return append(errs, dateErrs...), from, to
}

func parseEntryDates(fromStr, toStr string) (time.Time, *time.Time, []fieldError) {
	var errs []fieldError
	var from time.Time
	if strings.TrimSpace(fromStr) == "" {
		errs = append(errs, fieldError{Msg: "From date is required", Param: "from"})
	} else {
		var ok bool
		if from, ok = parseDate(fromStr); !ok {
			errs = append(errs, fieldError{Msg: "From date is invalid", Param: "from"})
		}
	}
	var to *time.Time
	if strings.TrimSpace(toStr) != "" {
		t, ok := parseDate(toStr)
		if !ok {
			errs = append(errs, fieldError{Msg: "To date is invalid", Param: "to"})
		} else {
			to = &t
		}
	}
	return from, to, errs
}

// AddExperience godoc
// @Summary Prepend an experience entry
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body experienceReq true "experience"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]any
// @Router /api/profile/experience [put]
func (h *Handler) AddExperience(c *gin.Context) {
	uid, ok := subjectID(c)
	if !ok {
		return
	}
	var in experienceReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorsBody([]fieldError{{Msg: "Invalid JSON body"}}))
		return
	}
	errs, from, to := in.validate()
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errorsBody(errs))
		return
	}

	e := domain.Experience{
		ID:          primitive.NewObjectID(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	p, err := h.Profiles.PushExperience(c.Request.Context(), uid, e)
	if err != nil {
		if err == repo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"msg": "There is no profile for this user"})
			return
		}
		serverError(c, "experience add", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteExperience godoc
// @Summary Remove an experience entry by id
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param id path string true "experience id"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /api/profile/experience/{id} [delete]
func (h *Handler) DeleteExperience(c *gin.Context) {
	uid, ok := subjectID(c)
	if !ok {
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Experience not found"})
		return
	}
	p, err := h.Profiles.PullExperience(c.Request.Context(), uid, entryID)
	if err != nil {
		switch err {
		case repo.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"msg": "There is no profile for this user"})
		case repo.ErrEntryNotFound:
			c.JSON(http.StatusNotFound, gin.H{"msg": "Experience not found"})
		default:
			serverError(c, "experience delete", err)
		}
		return
	}
	c.JSON(http.StatusOK, p)
}

type educationReq struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (in *educationReq) validate() ([]fieldError, time.Time, *time.Time) {
	var errs []fieldError
	if strings.TrimSpace(in.School) == "" {
		errs = append(errs, fieldError{Msg: "School is required", Param: "school"})
	}
	if strings.TrimSpace(in.Degree) == "" {
		errs = append(errs, fieldError{Msg: "Degree is required", Param: "degree"})
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		errs = append(errs, fieldError{Msg: "Field of study is required", Param: "fieldofstudy"})
	}
	from, to, dateErrs := parseEntryDates(in.From, in.To)
	return append(errs, dateErrs...), from, to
}

// AddEducation godoc
// @Summary Prepend an education entry
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body educationReq true "education"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]any
// @Router /api/profile/education [put]
func (h *Handler) AddEducation(c *gin.Context) {
	uid, ok := subjectID(c)
	if !ok {
		return
	}
	var in educationReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorsBody([]fieldError{{Msg: "Invalid JSON body"}}))
		return
	}
	errs, from, to := in.validate()
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errorsBody(errs))
		return
	}

	e := domain.Education{
		ID:           primitive.NewObjectID(),
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	p, err := h.Profiles.PushEducation(c.Request.Context(), uid, e)
	if err != nil {
		if err == repo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"msg": "There is no profile for this user"})
			return
		}
		serverError(c, "education add", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteEducation godoc
// @Summary Remove an education entry by id
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param id path string true "education id"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /api/profile/education/{id} [delete]
func (h *Handler) DeleteEducation(c *gin.Context) {
	uid, ok := subjectID(c)
	if !ok {
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Education not found"})
		return
	}
	p, err := h.Profiles.PullEducation(c.Request.Context(), uid, entryID)
	if err != nil {
		switch err {
		case repo.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"msg": "There is no profile for this user"})
		case repo.ErrEntryNotFound:
			c.JSON(http.StatusNotFound, gin.H{"msg": "Education not found"})
		default:
			serverError(c, "education delete", err)
		}
		return
	}
	c.JSON(http.StatusOK, p)
}
