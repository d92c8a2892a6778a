package settings

import (
	v "github.com/valderan/docker-simple-manager/internal/validator"
)

// CurrentVersion is the document version this build writes.
var CurrentVersion = Version{1, 1, 0}

// SchemaVersion is written alongside CurrentVersion.
const SchemaVersion = 2

// Patterns shared by the built-in groups.
const (
	HexColorPattern = `^#[0-9a-fA-F]{6}$`
	HotkeyPattern   = `^[A-Za-z0-9\+\-\s]+$`
)

// Group names of the built-in schema.
const (
	GroupApp           = "app"
	GroupLogging       = "logging"
	GroupTheme         = "theme"
	GroupHotkeys       = "hotkeys"
	GroupConnections   = "connections"
	GroupProjects      = "projects"
	GroupTerminal      = "terminal"
	GroupMetrics       = "metrics"
	GroupUIState       = "ui_state"
	GroupNotifications = "notifications"
)

var (
	isBool         = v.NewTypeCheck(v.KindBool)
	isString       = v.NewTypeCheck(v.KindString)
	isOptionalText = v.NewTypeCheck(v.KindString, v.KindNull)
	isList         = v.NewTypeCheck(v.KindList)
	isMap          = v.NewTypeCheck(v.KindMap)
)

// DefaultGroups builds a fresh set of the built-in groups, in the order
// they are validated and written.
func DefaultGroups() []*Group {
	return []*Group{
		appGroup(),
		loggingGroup(),
		themeGroup(),
		hotkeysGroup(),
		connectionsGroup(),
		projectsGroup(),
		terminalGroup(),
		metricsGroup(),
		uiStateGroup(),
		notificationsGroup(),
	}
}

func appGroup() *Group {
	return NewGroup(GroupApp,
		Field{"language", "ru", v.NewEnum("ru", "en")},
		Field{"theme", "system", v.NewEnum("light", "dark", "system")},
		Field{"window_width", 1920, v.Between(800, 10000)},
		Field{"window_height", 1080, v.Between(600, 10000)},
		Field{"window_x", 0, v.Between(-10000, 10000)},
		Field{"window_y", 0, v.Between(-10000, 10000)},
		Field{"window_maximized", true, isBool},
		Field{"save_window_state", true, isBool},
	)
}

func loggingGroup() *Group {
	return NewGroup(GroupLogging,
		Field{"enabled", true, isBool},
		Field{"level", "INFO", v.NewEnum("DEBUG", "INFO", "WARNING", "ERROR")},
		Field{"max_file_size_mb", 10, v.Between(1, 1000)},
		Field{"max_archived_files", 5, v.Between(1, 50)},
	)
}

func themeGroup() *Group {
	hex := v.MustPattern(HexColorPattern)
	colors := []struct{ key, def string }{
		{"primary_color_light", "#218094"},
		{"primary_color_dark", "#32b8c6"},
		{"background_light", "#fcfcf9"},
		{"background_dark", "#1f2121"},
		{"text_light", "#134252"},
		{"text_dark", "#f5f5f5"},
		{"border_color_light", "#5e5240"},
		{"border_color_dark", "#777c7c"},
		{"table_background_light", "#ffffff"},
		{"table_background_dark", "#2b2d30"},
		{"table_alternate_background_light", "#f5f1ea"},
		{"table_alternate_background_dark", "#25272a"},
		{"table_selection_background_light", "#d2edf4"},
		{"table_selection_background_dark", "#3a505a"},
		{"table_selection_text_light", "#134252"},
		{"table_selection_text_dark", "#f5f5f5"},
		{"accent_success", "#208094"},
		{"accent_error", "#c01547"},
		{"accent_warning", "#a84b2f"},
		{"accent_info", "#626c71"},
	}
	fields := make([]Field, 0, len(colors)+2)
	for _, c := range colors {
		fields = append(fields, Field{c.key, c.def, hex})
	}
	fields = append(fields,
		Field{"font_family", "", isString},
		Field{"font_size", 11, v.Between(6, 48)},
	)
	return NewGroup(GroupTheme, fields...)
}

func hotkeysGroup() *Group {
	rule := v.NewComposite(isString, v.MustPattern(HotkeyPattern))
	bindings := []struct{ key, def string }{
		{"open_connections_manager", "Ctrl+Alt+C"},
		{"test_connection", "Ctrl+Alt+T"},
		{"open_projects_manager", "Ctrl+Alt+P"},
		{"open_settings", "Ctrl+Alt+S"},
		{"open_logs", "Ctrl+Alt+L"},
		{"open_help", "F1"},
		{"open_about", "Ctrl+Alt+I"},
		{"exit_app", "Ctrl+Q"},
		{"next_tab", "Ctrl+Tab"},
		{"prev_tab", "Ctrl+Shift+Tab"},
		{"run_last_project", "Ctrl+Alt+R"},
		{"refresh_data", "F5"},
		{"switch_tab_1", "1"},
		{"switch_tab_2", "2"},
		{"switch_tab_3", "3"},
		{"switch_tab_4", "4"},
	}
	fields := make([]Field, 0, len(bindings))
	for _, b := range bindings {
		fields = append(fields, Field{b.key, b.def, rule})
	}
	return NewGroup(GroupHotkeys, fields...)
}

func connectionsGroup() *Group {
	return NewGroup(GroupConnections,
		Field{"auto_connect_on_startup", []any{}, isList},
		Field{"default_connection", nil, isOptionalText},
		Field{"refresh_rate_ms", 5000, v.Between(1000, 60000)},
		Field{"connection_timeout_sec", 5, v.Between(1, 120)},
		Field{"auto_refresh_enabled", true, isBool},
		Field{"connection_timeout_enabled", true, isBool},
		Field{"auto_activate_connections", true, isBool},
	)
}

func projectsGroup() *Group {
	return NewGroup(GroupProjects,
		Field{"auto_load_projects", true, isBool},
		Field{"default_project", nil, isOptionalText},
		Field{"show_project_history", true, isBool},
	)
}

func terminalGroup() *Group {
	return NewGroup(GroupTerminal,
		Field{"use_system_console", false, isBool},
		Field{"container_shell", "/bin/sh", isString},
	)
}

func metricsGroup() *Group {
	return NewGroup(GroupMetrics,
		Field{"container_stats_refresh_ms", 5000, v.Between(500, 60000)},
		Field{"system_metrics_enabled", true, isBool},
		Field{"system_metrics_refresh_ms", 3000, v.Between(500, 60000)},
	)
}

func uiStateGroup() *Group {
	return NewGroup(GroupUIState,
		Field{"open_tabs", []any{}, isList},
		Field{"last_active_tab", 0, v.Between(0, 1000)},
		Field{"dashboard_visible", true, isBool},
		Field{"footer_visible", true, isBool},
		Field{"column_widths", map[string]any{}, isMap},
	)
}

func notificationsGroup() *Group {
	return NewGroup(GroupNotifications,
		Field{"enabled", true, isBool},
		Field{"show_container_updates", true, isBool},
		Field{"show_build_notifications", true, isBool},
	)
}
