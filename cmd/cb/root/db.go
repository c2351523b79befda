package root

import (
	"context"
	"database/sql"

	"choreboard/internal/engine"
	"choreboard/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openSession(ctx context.Context) (*engine.Session, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	session, err := engine.NewSession(ctx, db, engine.GateFromEnv())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return session, cleanup, nil
}
