package cli

// Template describes an initial window layout for a new topic session.
// Windows are created detached, in order, before the client attaches.
type Template struct {
	Name        string
	Description string
	Windows     []string
}

// builtinTemplates are offered by the --new-topic --template menu.
var builtinTemplates = []Template{
	{
		Name:        "dev",
		Description: "editor, shell, and logs windows",
		Windows:     []string{"edit", "shell", "logs"},
	},
	{
		Name:        "ops",
		Description: "shell plus a monitoring window",
		Windows:     []string{"shell", "watch"},
	},
	{
		Name:        "scratch",
		Description: "a single throwaway shell",
	},
}
