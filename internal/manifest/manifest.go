// Package manifest lists the folders and files every generated project contains.
//
// Both lists are fixed at compile time. Paths are slash-separated and relative
// to the project root; convert them with filepath.FromSlash before touching
// the filesystem.
package manifest

import (
	"path"
	"sort"
)

// Folders is the folder skeleton created before any file is written.
var Folders = []string{
	"src/assets/icons",
	"src/assets/images",
	"src/services",
	"src/components/ui",
	"src/context",
	"src/hooks",
	"src/pages",
	"src/stores",
	"src/utils",
	"src/types",
	"src/router",
	"src/i18n/locales",
	"public",
}

// Files is every file the generated project contains, in creation order.
var Files = []string{
	"package.json",
	"vite.config.ts",
	"tsconfig.json",
	"tsconfig.node.json",
	"tailwind.config.js",
	"postcss.config.js",
	".eslintrc.cjs",
	".prettierrc",
	".gitignore",
	".env",
	"README.md",
	"index.html",
	"src/main.tsx",
	"src/App.tsx",
	"src/index.css",
	"src/vite-env.d.ts",
	"src/utils/cn.ts",
	"src/stores/appStore.ts",
	"src/types/index.ts",
	"src/hooks/useAppStore.ts",
	"src/context/AppContext.tsx",
	"src/services/api.ts",
	"src/components/ui/Button.tsx",
	"src/components/Layout.tsx",
	"src/pages/Home.tsx",
	"src/pages/About.tsx",
	"src/router/index.tsx",
	"src/i18n/index.ts",
	"src/i18n/locales/en.json",
	"src/i18n/locales/es.json",
	"public/vite.svg",
}

// Directories returns the sorted union of Folders and every parent directory
// implied by Files, excluding the project root itself.
func Directories() []string {
	seen := make(map[string]bool)
	add := func(dir string) {
		for dir != "." && dir != "" && !seen[dir] {
			seen[dir] = true
			dir = path.Dir(dir)
		}
	}

	for _, f := range Folders {
		add(f)
	}
	for _, f := range Files {
		add(path.Dir(f))
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}
