package database

import (
	"bytes"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)

	d := New(db)
	require.NoError(t, d.Migrate())
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestProjectCreateThenFind(t *testing.T) {
	d := newTestDatabase(t)
	repo := d.ProjectRepo()

	project := models.ProjectInput{
		Title:       "X",
		Description: "Y",
		Image:       "z.png",
		TechStack:   []string{"go", "postgres"},
	}.Project()
	require.NoError(t, repo.Add(&project))
	assert.NotEqual(t, uuid.Nil, project.ID)

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "X", found.Title)
	assert.Equal(t, []string{"go", "postgres"}, []string(found.TechStack))
	assert.NotNil(t, found.Features)
	assert.Len(t, found.Features, 0)
	assert.Equal(t, "", found.LiveURL)
	assert.Equal(t, "", found.GithubURL)
	assert.Equal(t, 0, found.Order)
	assert.Nil(t, found.Techfield)
}

func TestFindByIDAbsent(t *testing.T) {
	d := newTestDatabase(t)

	project, err := d.ProjectRepo().FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, project)

	link, err := d.SocialLinkRepo().FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, link)
}

func TestFindAllOrdersByOrder(t *testing.T) {
	d := newTestDatabase(t)
	repo := d.TestimonialRepo()

	for _, order := range []int{3, 1, 2} {
		testimonial := models.Testimonial{
			Name:    faker.Name(),
			Title:   "CTO",
			Company: "Acme",
			Content: faker.Sentence(),
			Order:   order,
		}
		require.NoError(t, repo.Add(&testimonial))
	}

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, testimonial := range all {
		assert.Equal(t, i+1, testimonial.Order)
	}
}

func TestFindAllEmptyIsNotNil(t *testing.T) {
	d := newTestDatabase(t)

	all, err := d.ExpertiseRepo().FindAll()
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestUpdate(t *testing.T) {
	d := newTestDatabase(t)
	repo := d.ExpertiseRepo()

	expertise := models.Expertise{Title: "Web", Description: "Sites", Icon: "globe-lock", Skills: []string{"react"}, Order: 2}
	require.NoError(t, repo.Add(&expertise))

	t.Run("empty patch leaves the row unchanged", func(t *testing.T) {
		updated, err := repo.Update(expertise.ID, models.ExpertisePatch{})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, expertise, *updated)
	})

	t.Run("only present fields change", func(t *testing.T) {
		updated, err := repo.Update(expertise.ID, models.ExpertisePatch{Title: strPtr("Frontend"), Order: intPtr(0)})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Frontend", updated.Title)
		assert.Equal(t, 0, updated.Order)
		assert.Equal(t, "Sites", updated.Description)
		assert.Equal(t, []string{"react"}, []string(updated.Skills))
	})

	t.Run("coerced list clears the column", func(t *testing.T) {
		updated, err := repo.Update(expertise.ID, models.ExpertisePatch{Skills: models.OptionalList{Set: true, Items: []string{}}})
		require.NoError(t, err)
		assert.Len(t, updated.Skills, 0)
		assert.NotNil(t, updated.Skills)
	})

	t.Run("absent id", func(t *testing.T) {
		updated, err := repo.Update(uuid.New(), models.ExpertisePatch{Title: strPtr("x")})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestProjectTechfield(t *testing.T) {
	d := newTestDatabase(t)

	web := models.Expertise{Title: "Web", Description: "d", Icon: "code"}
	ai := models.Expertise{Title: "AI", Description: "d", Icon: "bot"}
	require.NoError(t, d.ExpertiseRepo().Add(&web))
	require.NoError(t, d.ExpertiseRepo().Add(&ai))

	repo := d.ProjectRepo()
	for i, techfield := range []uuid.UUID{web.ID, ai.ID, web.ID} {
		id := techfield
		project := models.Project{Title: "P", Description: "d", Image: "i", Order: i, Techfield: &id}
		require.NoError(t, repo.Add(&project))
	}

	projects, err := repo.FindByTechfield(web.ID)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
	for _, project := range projects {
		assert.Equal(t, web.ID, *project.Techfield)
	}

	t.Run("patch can clear the link", func(t *testing.T) {
		cleared, err := repo.Update(projects[0].ID, models.ProjectPatch{Techfield: models.NullableID{Set: true}})
		require.NoError(t, err)
		assert.Nil(t, cleared.Techfield)
	})

	t.Run("dangling reference is a store error", func(t *testing.T) {
		missing := uuid.New()
		project := models.Project{Title: "P", Description: "d", Image: "i", Techfield: &missing}
		assert.Error(t, repo.Add(&project))
	})

	t.Run("referenced expertise cannot be deleted", func(t *testing.T) {
		_, err := d.ExpertiseRepo().Delete(ai.ID)
		assert.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	d := newTestDatabase(t)
	repo := d.SocialLinkRepo()

	link := models.SocialLink{Platform: "GitHub", URL: "https://github.com/x", Icon: "github"}
	require.NoError(t, repo.Add(&link))

	removed, err := repo.Delete(link.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	found, err := repo.FindByID(link.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	removed, err = repo.Delete(link.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestContacts(t *testing.T) {
	d := newTestDatabase(t)
	repo := d.ContactRepo()

	first := models.Contact{Name: faker.Name(), Email: faker.Email(), Subject: "Hi", Message: "one", Read: true}
	require.NoError(t, repo.Add(&first))
	assert.False(t, first.Read, "new messages start unread")
	assert.WithinDuration(t, time.Now(), first.CreatedAt, time.Minute)

	second := models.Contact{Name: faker.Name(), Email: faker.Email(), Subject: "Hi", Message: "two", CreatedAt: first.CreatedAt.Add(time.Second)}
	require.NoError(t, repo.Add(&second))

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "one", all[0].Message)
	assert.Equal(t, "two", all[1].Message)

	unread, err := repo.CountUnread()
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	for i := 0; i < 2; i++ {
		read, err := repo.MarkRead(first.ID)
		require.NoError(t, err)
		require.NotNil(t, read)
		assert.True(t, read.Read)
		assert.Equal(t, first.CreatedAt.Unix(), read.CreatedAt.Unix())
	}

	unread, err = repo.CountUnread()
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	missing, err := repo.MarkRead(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestUsers(t *testing.T) {
	d := newTestDatabase(t)
	repo := d.UserRepo()

	exists, err := repo.AdminExists()
	require.NoError(t, err)
	assert.False(t, exists)

	user, err := repo.RegisterAdmin("admin", "correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.Password)

	exists, err = repo.AdminExists()
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("valid credentials", func(t *testing.T) {
		found, err := repo.Authenticate("admin", "correct horse")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		wrong, err := repo.Authenticate("admin", "battery staple")
		require.NoError(t, err)
		unknown, err := repo.Authenticate("nobody", "correct horse")
		require.NoError(t, err)
		assert.Nil(t, wrong)
		assert.Nil(t, unknown)
	})

	t.Run("usernames are unique", func(t *testing.T) {
		_, err := repo.RegisterAdmin("admin", "other")
		assert.Error(t, err)
	})
}

func TestColumnReport(t *testing.T) {
	d := newTestDatabase(t)
	require.NoError(t, d.db.Exec("ALTER TABLE projects ADD COLUMN legacy_slug text").Error)

	reports, err := d.ColumnReport()
	require.NoError(t, err)
	require.Len(t, reports, len(models.All()))

	byTable := map[string]TableReport{}
	for _, report := range reports {
		byTable[report.Table] = report
		assert.True(t, report.Exists, report.Table)
	}
	assert.Equal(t, []string{"legacy_slug"}, byTable["projects"].Unmapped)
	assert.Empty(t, byTable["expertise"].Unmapped)

	var out bytes.Buffer
	WriteColumnReport(&out, reports)
	assert.Contains(t, out.String(), "--- Table: projects ---")
	assert.Contains(t, out.String(), "  - legacy_slug")
	assert.Contains(t, out.String(), "Total mismatched columns across all tables: 1")
}

func TestColumnReportBeforeMigrate(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)

	reports, err := New(db).ColumnReport()
	require.NoError(t, err)
	for _, report := range reports {
		assert.False(t, report.Exists)
	}
}

func TestOpenRejectsBadConfiguration(t *testing.T) {
	_, err := Open(config.FromMap(map[string]string{"DB_TYPE": "postgres"}))
	require.Error(t, err)
	assert.True(t, errs.IsEnvironmentVariableError(err))

	_, err = Open(config.FromMap(map[string]string{"DB_TYPE": "mongo"}))
	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))
}
