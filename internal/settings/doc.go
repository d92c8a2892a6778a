// Package settings is dsmanager's settings registry: a fixed set of named
// groups of validated keys, persisted as one versioned document.
//
// A [Registry] owns one [Group] per schema group plus the document's
// metadata (top-level fields no group owns, such as "version"). Loading
// merges the file over the compiled-in defaults, runs the [Pipeline] when
// the file is older than [CurrentVersion], and distributes each payload into
// its group. Saving writes metadata and every group back out.
//
//	reg := settings.New(settings.WithPath(path), settings.WithLogger(logger))
//	if err := reg.Load(""); err != nil {
//		return err
//	}
//	reg.RegisterObserver(settings.NewLoggingObserver(logger))
//	if err := reg.SetValue("app", "language", "en"); err != nil {
//		return err
//	}
//	return reg.Save("")
//
// # Errors
//
// Every failure is an [*Error] with one of four kinds: [KindNotFound],
// [KindValidation], [KindMigration] and [KindIO]. Match them with
// errors.Is against [ErrNotFound], [ErrValidation], [ErrMigration] and
// [ErrIO], or read the fields with errors.As.
//
// # Atomicity
//
// [Group.FromMap] and [Registry.Load] validate every incoming value before
// storing any, so a rejected document leaves the registry unchanged. A
// failed migration puts the pre-migration copy of the file back before the
// error is returned. That copy is the only rollback; concurrent writers to
// the same file are not detected.
//
// # Concurrency
//
// A Registry is meant for a single writer. Observers run synchronously on
// the goroutine that called [Registry.SetValue].
package settings
