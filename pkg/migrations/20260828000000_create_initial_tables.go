package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		// Create users table
		_, err := db.Exec(`
			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				display_name TEXT NOT NULL,
				email TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				provider TEXT NOT NULL DEFAULT 'password',
				avatar_path TEXT,
				reset_token TEXT,
				reset_token_expires_at TIMESTAMPTZ
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE UNIQUE INDEX ux_users_email ON users (email COLLATE NOCASE)`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Create books table (per-user shelf items)
		_, err = db.Exec(`
			CREATE TABLE books (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL,
				isbn TEXT NOT NULL,
				title TEXT NOT NULL,
				author TEXT NOT NULL DEFAULT '',
				item_caption TEXT NOT NULL DEFAULT '',
				books_genre_id TEXT NOT NULL DEFAULT '',
				large_image_url TEXT NOT NULL DEFAULT '',
				medium_image_url TEXT NOT NULL DEFAULT '',
				small_image_url TEXT NOT NULL DEFAULT '',
				publisher_name TEXT NOT NULL DEFAULT '',
				sales_date TEXT NOT NULL DEFAULT '',
				item_url TEXT NOT NULL DEFAULT '',
				memo TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'reading' CHECK (status IN ('reading', 'tsundoku'))
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		// One shelf row per catalog id per owner.
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_books_user_isbn ON books (user_id, isbn)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_books_user_status ON books (user_id, status)`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Create booklists table
		_, err = db.Exec(`
			CREATE TABLE booklists (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL,
				name TEXT NOT NULL,
				visibility TEXT NOT NULL DEFAULT 'private' CHECK (visibility IN ('private', 'open'))
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_booklists_user_id ON booklists (user_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Create booklist_books table (frozen snapshots of shelf items)
		_, err = db.Exec(`
			CREATE TABLE booklist_books (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				booklist_id INTEGER REFERENCES booklists (id) ON DELETE CASCADE NOT NULL,
				isbn TEXT NOT NULL,
				title TEXT NOT NULL,
				author TEXT NOT NULL DEFAULT '',
				item_caption TEXT NOT NULL DEFAULT '',
				books_genre_id TEXT NOT NULL DEFAULT '',
				large_image_url TEXT NOT NULL DEFAULT '',
				medium_image_url TEXT NOT NULL DEFAULT '',
				small_image_url TEXT NOT NULL DEFAULT '',
				publisher_name TEXT NOT NULL DEFAULT '',
				sales_date TEXT NOT NULL DEFAULT '',
				item_url TEXT NOT NULL DEFAULT '',
				memo TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'reading'
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_booklist_books_booklist_id ON booklist_books (booklist_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Create favorites table
		_, err = db.Exec(`
			CREATE TABLE favorites (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL,
				booklist_id INTEGER NOT NULL,
				list_owner_id INTEGER NOT NULL,
				name TEXT NOT NULL DEFAULT '',
				visibility TEXT NOT NULL DEFAULT ''
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		// One favorite per (viewer, booklist). No FK on booklist_id: the
		// source list may be deleted and the favorite deliberately survives.
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_favorites_user_booklist ON favorites (user_id, booklist_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Create follow_edges table
		_, err = db.Exec(`
			CREATE TABLE follow_edges (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL,
				direction TEXT NOT NULL CHECK (direction IN ('following', 'followers')),
				peer_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE UNIQUE INDEX ux_follow_edges ON follow_edges (user_id, direction, peer_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"follow_edges", "favorites", "booklist_books", "booklists", "books", "users"} {
			if _, err := db.Exec(`DROP TABLE IF EXISTS ` + table); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
