package migrations

import "io/fs"

func Postgres() fs.FS {
	sub, _ := fs.Sub(postgres, "postgres")
	return sub
}

func SQLite() fs.FS {
	sub, _ := fs.Sub(sqlite, "sqlite")
	return sub
}
