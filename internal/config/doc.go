// Package config loads the dsmanager CLI's own configuration with Viper.
//
// This is not the settings document the CLI manages; it only tells the CLI
// where that document lives and how to log. The file is dsmanager.yaml,
// searched in $DSM_CONFIG_DIR, the working directory and
// $XDG_CONFIG_HOME/dsmanager, in that order:
//
//	settings_file: ~/work/dsmanager.json
//	log_format: json
//	log_file: /tmp/dsmanager.log
//	backup_suffix: .bak
//	watch_debounce: 500ms
//
// Every key can be overridden from the environment with the DSM_ prefix,
// for example DSM_LOG_FORMAT=json.
//
//	config.Init()
//	cfg, err := config.Load("")
//
// [Load] runs [Validate] and fails on any field error.
package config
