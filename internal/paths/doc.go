// Package paths resolves the per-user locations dsmanager reads and writes.
//
// Directories follow the XDG Base Directory layout through
// github.com/adrg/xdg:
//
//	| Purpose   | Location                                 |
//	|-----------|------------------------------------------|
//	| Settings  | <ConfigHome>/dsmanager/config.json       |
//	| Logs      | <StateHome>/dsmanager/logs               |
//	| Legacy    | ~/.dsmanager/config.json                 |
//
// [ResolveSettingsFile] falls back to the legacy location when only that
// document exists, so older installs keep their settings.
package paths
