// Package repotest holds the behaviour every ports.Repository implementation must share.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

// Run exercises repo against the shared contract. newRepo must return an empty store.
func Run(t *testing.T, newRepo func(t *testing.T) ports.Repository) {
	t.Run("LinksNewestFirst", func(t *testing.T) { testLinksNewestFirst(t, newRepo(t)) })
	t.Run("UpdateLink", func(t *testing.T) { testUpdateLink(t, newRepo(t)) })
	t.Run("DeleteLink", func(t *testing.T) { testDeleteLink(t, newRepo(t)) })
	t.Run("LinksByDomain", func(t *testing.T) { testLinksByDomain(t, newRepo(t)) })
	t.Run("DomainCRUD", func(t *testing.T) { testDomainCRUD(t, newRepo(t)) })
	t.Run("DuplicateDomain", func(t *testing.T) { testDuplicateDomain(t, newRepo(t)) })
}

func testLinksNewestFirst(t *testing.T, repo ports.Repository) {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	older := &domain.Link{Title: "older", URL: "a.com", Domain: "math", PostedAt: base}
	newer := &domain.Link{Title: "newer", URL: "b.com", Domain: "math", PostedAt: base.Add(time.Minute)}
	require.NoError(t, repo.CreateLink(ctx, older))
	require.NoError(t, repo.CreateLink(ctx, newer))
	assert.NotEmpty(t, older.ID)
	assert.NotEqual(t, older.ID, newer.ID)

	links, err := repo.ListLinks(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "newer", links[0].Title)
	assert.Equal(t, "older", links[1].Title)
	assert.True(t, links[1].PostedAt.Equal(base), "postedAt should round-trip")
}

func testUpdateLink(t *testing.T, repo ports.Repository) {
	ctx := context.Background()
	link := &domain.Link{Title: "T", Description: "D", URL: "example.com", Domain: "math"}
	require.NoError(t, repo.CreateLink(ctx, link))

	in := domain.LinkInput{Title: "T2", Description: "D2", FileURL: "https://files/1_a.pdf", Domain: "physics"}
	require.NoError(t, repo.UpdateLink(ctx, link.ID, in))

	got, err := repo.GetLink(ctx, link.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, link.ID, got.ID)
	assert.True(t, got.PostedAt.Equal(link.PostedAt))
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, "D2", got.Description)
	assert.Empty(t, got.URL)
	assert.Equal(t, "https://files/1_a.pdf", got.FileURL)
	assert.Equal(t, "physics", got.Domain)

	// Unknown ids are silently ignored.
	require.NoError(t, repo.UpdateLink(ctx, "missing", in))
	links, err := repo.ListLinks(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func testDeleteLink(t *testing.T, repo ports.Repository) {
	ctx := context.Background()
	keep := &domain.Link{Title: "keep"}
	drop := &domain.Link{Title: "drop"}
	require.NoError(t, repo.CreateLink(ctx, keep))
	require.NoError(t, repo.CreateLink(ctx, drop))

	require.NoError(t, repo.DeleteLink(ctx, drop.ID))
	require.NoError(t, repo.DeleteLink(ctx, drop.ID), "deleting twice should not error")

	got, err := repo.GetLink(ctx, drop.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	links, err := repo.ListLinks(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, keep.ID, links[0].ID)
}

func testLinksByDomain(t *testing.T, repo ports.Repository) {
	ctx := context.Background()
	for _, d := range []string{"math", "Math", "math", "physics"} {
		require.NoError(t, repo.CreateLink(ctx, &domain.Link{Title: d, Domain: d}))
	}

	math, err := repo.ListLinksByDomain(ctx, "math")
	require.NoError(t, err)
	assert.Len(t, math, 2, "matching is exact and case-sensitive")

	n, err := repo.DeleteLinksByDomain(ctx, "math")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rest, err := repo.ListLinks(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	for _, l := range rest {
		assert.NotEqual(t, "math", l.Domain)
	}

	none, err := repo.ListLinksByDomain(ctx, "math")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testDomainCRUD(t *testing.T, repo ports.Repository) {
	ctx := context.Background()
	d := &domain.Domain{Name: "math"}
	require.NoError(t, repo.CreateDomain(ctx, d))
	require.NotEmpty(t, d.ID)

	got, err := repo.GetDomain(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "math", got.Name)

	require.NoError(t, repo.UpdateDomain(ctx, d.ID, "algebra"))
	byName, err := repo.GetDomainByName(ctx, "algebra")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, d.ID, byName.ID)

	old, err := repo.GetDomainByName(ctx, "math")
	require.NoError(t, err)
	assert.Nil(t, old)

	all, err := repo.ListDomains(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteDomain(ctx, d.ID))
	missing, err := repo.GetDomain(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err = repo.ListDomains(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testDuplicateDomain(t *testing.T, repo ports.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.CreateDomain(ctx, &domain.Domain{Name: "math"}))

	err := repo.CreateDomain(ctx, &domain.Domain{Name: "math"})
	assert.ErrorIs(t, err, domain.ErrDuplicateDomain)

	require.NoError(t, repo.CreateDomain(ctx, &domain.Domain{Name: "Math"}), "names are case-sensitive")

	other := &domain.Domain{Name: "physics"}
	require.NoError(t, repo.CreateDomain(ctx, other))
	assert.ErrorIs(t, repo.UpdateDomain(ctx, other.ID, "math"), domain.ErrDuplicateDomain)
	require.NoError(t, repo.UpdateDomain(ctx, other.ID, "physics"), "renaming to itself is allowed")

	all, err := repo.ListDomains(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
