package store

import (
	"context"
	"errors"
	"testing"

	"blog/internal/database"
	"blog/internal/model"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func postVals(p model.Post, author model.User) []any {
	return []any{p.ID, p.AuthorID, p.Title, p.Subtitle, p.Date, p.Body, p.ImgURL, author.ID, author.Name, author.Email}
}

func TestPostStore(t *testing.T) {
	author := model.User{ID: 1, Name: "Admin", Email: "admin@example.com"}
	sample := model.Post{
		ID:       3,
		AuthorID: 1,
		Title:    gofakeit.Sentence(4),
		Subtitle: gofakeit.Sentence(6),
		Date:     "March 05, 2025",
		Body:     gofakeit.Paragraph(1, 3, 10, " "),
		ImgURL:   "https://example.com/a.jpg",
	}

	/* --- GetPostByID --- */
	t.Run("GetPostByID success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "JOIN users u")
				require.Equal(t, []any{3}, args)
				return &fakeRow{vals: postVals(sample, author)}
			},
		}
		p, err := GetPostByID(context.Background(), db, 3)
		require.NoError(t, err)
		require.Equal(t, sample.Title, p.Title)
		require.Equal(t, "Admin", p.Author.Name)
		require.Equal(t, p.AuthorID, p.Author.ID)
	})

	t.Run("GetPostByID not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetPostByID(context.Background(), db, 9)
		require.ErrorIs(t, err, ErrNotFound)
	})

	/* --- ListPosts --- */
	t.Run("ListPosts ok", func(t *testing.T) {
		second := sample
		second.ID = 4
		rows := &fakeRows{data: [][]any{postVals(sample, author), postVals(second, author)}}
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return rows, nil },
		}
		list, err := ListPosts(context.Background(), db)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, 4, list[1].ID)
		require.True(t, rows.closed)
	})

	t.Run("ListPosts empty is not nil", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return &fakeRows{}, nil },
		}
		list, err := ListPosts(context.Background(), db)
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("ListPosts query err", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("db fail") },
		}
		_, err := ListPosts(context.Background(), db)
		require.ErrorContains(t, err, "ListPosts")
	})

	t.Run("ListPosts scan err", func(t *testing.T) {
		rows := &fakeRows{data: [][]any{postVals(sample, author)}, scanErr: errors.New("scan fail")}
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return rows, nil },
		}
		_, err := ListPosts(context.Background(), db)
		require.Error(t, err)
	})

	t.Run("ListPosts rows err", func(t *testing.T) {
		rows := &fakeRows{err: errors.New("iter")}
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return rows, nil },
		}
		_, err := ListPosts(context.Background(), db)
		require.Error(t, err)
	})

	t.Run("ListPostsByAuthor", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "p.author_id = $1")
				require.Equal(t, []any{1}, args)
				return &fakeRows{data: [][]any{postVals(sample, author)}}, nil
			},
		}
		list, err := ListPostsByAuthor(context.Background(), db, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	/* --- CreatePost --- */
	t.Run("CreatePost ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Len(t, args, 6)
				require.Equal(t, 1, args[0])
				return &fakeRow{vals: []any{10}}
			},
		}
		p := sample
		p.ID = 0
		created, err := CreatePost(context.Background(), db, &p)
		require.NoError(t, err)
		require.Equal(t, 10, created.ID)
	})

	t.Run("CreatePost duplicate title", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: &pgconn.PgError{Code: uniqueViolation}}
			},
		}
		_, err := CreatePost(context.Background(), db, &model.Post{})
		require.ErrorIs(t, err, ErrDuplicate)
	})

	/* --- UpdatePost --- */
	t.Run("UpdatePost ok", func(t *testing.T) {
		var got []any
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				got = args
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		require.NoError(t, UpdatePost(context.Background(), db, &sample))
		require.Equal(t, sample.ID, got[len(got)-1])
	})

	t.Run("UpdatePost missing", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		require.ErrorIs(t, UpdatePost(context.Background(), db, &sample), ErrNotFound)
	})

	t.Run("UpdatePost duplicate title", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, &pgconn.PgError{Code: uniqueViolation}
			},
		}
		require.ErrorIs(t, UpdatePost(context.Background(), db, &sample), ErrDuplicate)
	})

	/* --- DeletePost --- */
	t.Run("DeletePost ok", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				require.Contains(t, sql, "DELETE FROM blog_posts")
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		require.NoError(t, DeletePost(context.Background(), db, 3))
	})

	t.Run("DeletePost missing", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 0"), nil
			},
		}
		require.ErrorIs(t, DeletePost(context.Background(), db, 3), ErrNotFound)
	})

	t.Run("DeletePost error", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("fail delete")
			},
		}
		require.ErrorContains(t, DeletePost(context.Background(), db, 3), "DeletePost")
	})
}
