package store

import (
	"context"

	"blog/internal/database"
	"blog/internal/model"

	"github.com/jackc/pgx/v5"
)

const selectComment = `
	SELECT c.id, c.text, c.author_id, c.post_id,
	       u.id, u.name, u.email
	FROM comments c
	JOIN users u ON u.id = c.author_id`

// CreateComment 文章或作者不存在時回傳 ErrInvalidReference
func CreateComment(ctx context.Context, db database.DB, c *model.Comment) (*model.Comment, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO comments (author_id, post_id, text)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		c.AuthorID,
		c.PostID,
		c.Text,
	)
	if err := row.Scan(&c.ID); err != nil {
		return nil, wrapErr("CreateComment", err)
	}
	return c, nil
}

// ListCommentsByPost Post → Comments，依建立順序
func ListCommentsByPost(ctx context.Context, db database.DB, postID int) ([]model.Comment, error) {
	return queryComments(ctx, db, "ListCommentsByPost", selectComment+` WHERE c.post_id = $1 ORDER BY c.id`, postID)
}

// ListCommentsByAuthor User → Comments
//
// 反向導覽查詢，與 ListPostsByAuthor 成對；目前沒有頁面列出使用者的留言
func ListCommentsByAuthor(ctx context.Context, db database.DB, authorID int) ([]model.Comment, error) {
	return queryComments(ctx, db, "ListCommentsByAuthor", selectComment+` WHERE c.author_id = $1 ORDER BY c.id`, authorID)
}

func queryComments(ctx context.Context, db database.DB, op, sql string, args ...any) ([]model.Comment, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return comments, nil
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	c := &model.Comment{Author: &model.User{}}
	if err := row.Scan(
		&c.ID,
		&c.Text,
		&c.AuthorID,
		&c.PostID,
		&c.Author.ID,
		&c.Author.Name,
		&c.Author.Email,
	); err != nil {
		return nil, err
	}
	return c, nil
}
