package store

import (
	"context"

	"blog/internal/database"
	"blog/internal/model"

	"github.com/jackc/pgx/v5"
)

const selectPost = `
	SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url,
	       u.id, u.name, u.email
	FROM blog_posts p
	JOIN users u ON u.id = p.author_id`

// GetPostByID 取得文章與作者
func GetPostByID(ctx context.Context, db database.DB, postID int) (*model.Post, error) {
	row := db.QueryRow(ctx, selectPost+` WHERE p.id = $1`, postID)
	p, err := scanPost(row)
	if err != nil {
		return nil, wrapErr("GetPostByID", err)
	}
	return p, nil
}

// ListPosts 取得全部文章 (依 id 排序)
func ListPosts(ctx context.Context, db database.DB) ([]model.Post, error) {
	return queryPosts(ctx, db, "ListPosts", selectPost+` ORDER BY p.id`)
}

// ListPostsByAuthor User → Posts
func ListPostsByAuthor(ctx context.Context, db database.DB, authorID int) ([]model.Post, error) {
	return queryPosts(ctx, db, "ListPostsByAuthor", selectPost+` WHERE p.author_id = $1 ORDER BY p.id`, authorID)
}

// CreatePost 標題重複回傳 ErrDuplicate，作者不存在回傳 ErrInvalidReference
func CreatePost(ctx context.Context, db database.DB, p *model.Post) (*model.Post, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO blog_posts (author_id, title, subtitle, date, body, img_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		p.AuthorID,
		p.Title,
		p.Subtitle,
		p.Date,
		p.Body,
		p.ImgURL,
	)
	if err := row.Scan(&p.ID); err != nil {
		return nil, wrapErr("CreatePost", err)
	}
	return p, nil
}

// UpdatePost 覆寫可編輯欄位 (date 保持不變)；同時編輯時後寫者為準
func UpdatePost(ctx context.Context, db database.DB, p *model.Post) error {
	tag, err := db.Exec(ctx,
		`UPDATE blog_posts SET
		     title = $1,
		     subtitle = $2,
		     body = $3,
		     img_url = $4,
		     author_id = $5
		 WHERE id = $6`,
		p.Title,
		p.Subtitle,
		p.Body,
		p.ImgURL,
		p.AuthorID,
		p.ID,
	)
	if err != nil {
		return wrapErr("UpdatePost", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr("UpdatePost", pgx.ErrNoRows)
	}
	return nil
}

// DeletePost 刪除文章，留言由 ON DELETE CASCADE 一併刪除
func DeletePost(ctx context.Context, db database.DB, postID int) error {
	tag, err := db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, postID)
	if err != nil {
		return wrapErr("DeletePost", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr("DeletePost", pgx.ErrNoRows)
	}
	return nil
}

func queryPosts(ctx context.Context, db database.DB, op, sql string, args ...any) ([]model.Post, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return posts, nil
}

// internal helper
func scanPost(row pgx.Row) (*model.Post, error) {
	p := &model.Post{Author: &model.User{}}
	if err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Title,
		&p.Subtitle,
		&p.Date,
		&p.Body,
		&p.ImgURL,
		&p.Author.ID,
		&p.Author.Name,
		&p.Author.Email,
	); err != nil {
		return nil, err
	}
	return p, nil
}
