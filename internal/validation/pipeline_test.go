package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bug-tracker/internal/models"
)

func validCreate() models.CreateBugInput {
	return models.CreateBugInput{
		Title:       models.Some("Login button not working"),
		Description: models.Some("Users cannot click the login button on mobile devices"),
		Priority:    models.Some("high"),
		Reporter:    models.Some("John Doe"),
	}
}

func messages(t *testing.T, err error) []string {
	t.Helper()
	var ve *Error
	require.ErrorAs(t, err, &ve)
	return ve.Messages
}

func TestValidateCreateAccepts(t *testing.T) {
	assert.NoError(t, ValidateCreate(validCreate()))

	in := validCreate()
	in.Tags = models.Some([]string{"ui", "mobile"})
	in.AssignedTo = models.Some("Jane")
	in.Status = models.Some("in-progress")
	assert.NoError(t, ValidateCreate(in))
}

func TestValidateCreateTitleBoundary(t *testing.T) {
	in := validCreate()
	in.Title = models.Some("ab")
	msgs := messages(t, ValidateCreate(in))
	assert.Equal(t, []string{"Title must be between 3 and 200 characters"}, msgs)

	in.Title = models.Some("abc")
	assert.NoError(t, ValidateCreate(in))

	in.Title = models.Some(strings.Repeat("t", 200))
	assert.NoError(t, ValidateCreate(in))

	in.Title = models.Some(strings.Repeat("t", 201))
	assert.Error(t, ValidateCreate(in))
}

func TestValidateCreateDescriptionBoundary(t *testing.T) {
	in := validCreate()
	in.Description = models.Some("  0123456789  ")
	assert.NoError(t, ValidateCreate(in))

	in.Description = models.Some("012345678")
	assert.Equal(t, []string{"Description must be at least 10 characters"}, messages(t, ValidateCreate(in)))
}

func TestValidateCreateReportsAllViolations(t *testing.T) {
	in := models.CreateBugInput{
		Title:    models.Some("   "),
		Priority: models.Some("urgent"),
		Tags:     models.Field[[]string]{Set: true, Invalid: true},
	}
	msgs := messages(t, ValidateCreate(in))
	assert.Equal(t, []string{
		"Title is required",
		"Description is required",
		"Reporter is required",
		"Invalid priority value",
		"Tags must be an array",
	}, msgs)
}

func TestValidateCreateStatus(t *testing.T) {
	in := validCreate()
	in.Status = models.Some("invalid-status")
	assert.Equal(t, []string{"Invalid status value"}, messages(t, ValidateCreate(in)))
}

func TestValidateCreateWrongTypes(t *testing.T) {
	in := validCreate()
	in.Title = models.Field[string]{Set: true, Invalid: true}
	in.AssignedTo = models.Field[string]{Set: true, Invalid: true}
	assert.Equal(t, []string{"Title must be a string", "AssignedTo must be a string"}, messages(t, ValidateCreate(in)))
}

func TestValidateUpdate(t *testing.T) {
	assert.NoError(t, ValidateUpdate(models.UpdateBugInput{}))
	assert.NoError(t, ValidateUpdate(models.UpdateBugInput{
		Status:     models.Some("resolved"),
		AssignedTo: models.Field[string]{Set: true, Null: true},
	}))

	msgs := messages(t, ValidateUpdate(models.UpdateBugInput{
		Title:    models.Some(""),
		Status:   models.Some("invalid-status"),
		Priority: models.Field[string]{Set: true, Null: true},
		Reporter: models.Some("Mallory"),
	}))
	assert.Equal(t, []string{
		"Title cannot be empty",
		"Invalid status value",
		"Invalid priority value",
		"Reporter cannot be changed",
	}, msgs)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("507f1f77bcf86cd799439011"))
	assert.Error(t, ValidateID("not-a-valid-id"))
	assert.Error(t, ValidateID(""))
	assert.Error(t, ValidateID("507f1f77bcf86cd79943901z"))
}

func TestValidateListFilter(t *testing.T) {
	assert.NoError(t, ValidateListFilter("", ""))
	assert.NoError(t, ValidateListFilter("open", "low"))
	assert.Len(t, messages(t, ValidateListFilter("opened", "lowest")), 2)
}
