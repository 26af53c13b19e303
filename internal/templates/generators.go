package templates

import (
	"bytes"
	"encoding/json"
	"text/template"
)

// Generator synthesizes file content from project metadata.
// Generators are pure: the same metadata always yields the same bytes.
type Generator func(Metadata) ([]byte, error)

// templateData is the value generator templates are executed with.
type templateData struct {
	ProjectName string
	APIURL      string
}

// Generators returns the builtin generator table keyed by manifest path.
func Generators() map[string]Generator {
	return map[string]Generator{
		"package.json":       packageJSON,
		"index.html":         textGenerator("index.html", indexHTML),
		"vite.config.ts":     textGenerator("vite.config.ts", viteConfig),
		"tsconfig.json":      textGenerator("tsconfig.json", tsconfigJSON),
		"tsconfig.node.json": textGenerator("tsconfig.node.json", tsconfigNodeJSON),
		"tailwind.config.js": textGenerator("tailwind.config.js", tailwindConfig),
		"postcss.config.js":  textGenerator("postcss.config.js", postcssConfig),
		".eslintrc.cjs":      textGenerator(".eslintrc.cjs", eslintConfig),
		".prettierrc":        textGenerator(".prettierrc", prettierConfig),
		".gitignore":         textGenerator(".gitignore", gitignore),
		".env":               textGenerator(".env", envFile),
		"README.md":          textGenerator("README.md", readme),
	}
}

// textGenerator returns a Generator that executes src as a text/template.
func textGenerator(name, src string) Generator {
	tmpl := template.Must(template.New(name).Option("missingkey=error").Parse(src))
	return func(meta Metadata) ([]byte, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, templateData{
			ProjectName: meta.ProjectName,
			APIURL:      DefaultAPIURL,
		}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// packageScripts is the fixed npm script table, in the order it is written.
type packageScripts struct {
	Dev     string `json:"dev"`
	Build   string `json:"build"`
	Lint    string `json:"lint"`
	LintFix string `json:"lint:fix"`
	Preview string `json:"preview"`
	Format  string `json:"format"`
}

// packageManifest is the generated package.json.
type packageManifest struct {
	Name            string            `json:"name"`
	Private         bool              `json:"private"`
	Version         string            `json:"version"`
	Type            string            `json:"type"`
	Scripts         packageScripts    `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Dependencies are the runtime dependencies of generated projects.
// Keep these current; they are not resolved at generation time.
var Dependencies = map[string]string{
	"react":                            "^18.2.0",
	"react-dom":                        "^18.2.0",
	"react-router-dom":                 "^6.20.1",
	"zustand":                          "^4.4.7",
	"zod":                              "^3.22.4",
	"react-i18next":                    "^13.5.0",
	"i18next":                          "^23.7.6",
	"i18next-browser-languagedetector": "^7.2.0",
	"lucide-react":                     "^0.294.0",
	"clsx":                             "^2.0.0",
	"tailwind-merge":                   "^2.2.0",
}

// DevDependencies are the development dependencies of generated projects.
var DevDependencies = map[string]string{
	"@types/react":                     "^18.2.43",
	"@types/react-dom":                 "^18.2.17",
	"@typescript-eslint/eslint-plugin": "^6.14.0",
	"@typescript-eslint/parser":        "^6.14.0",
	"@vitejs/plugin-react":             "^4.2.1",
	"autoprefixer":                     "^10.4.16",
	"eslint":                           "^8.55.0",
	"eslint-plugin-react-hooks":        "^4.6.0",
	"eslint-plugin-react-refresh":      "^0.4.5",
	"postcss":                          "^8.4.32",
	"prettier":                         "^3.1.1",
	"tailwindcss":                      "^3.3.6",
	"typescript":                       "^5.2.2",
	"vite":                             "^5.0.8",
}

func packageJSON(meta Metadata) ([]byte, error) {
	pkg := packageManifest{
		Name:    meta.ProjectName,
		Private: true,
		Version: "0.0.0",
		Type:    "module",
		Scripts: packageScripts{
			Dev:     "vite",
			Build:   "tsc && vite build",
			Lint:    "eslint . --ext ts,tsx --report-unused-disable-directives --max-warnings 0",
			LintFix: "eslint . --ext ts,tsx --fix",
			Preview: "vite preview",
			Format:  `prettier --write "src/**/*.{ts,tsx,js,jsx,json,css,md}"`,
		},
		Dependencies:    Dependencies,
		DevDependencies: DevDependencies,
	}

	// encoding/json sorts map keys, which matches npm's own ordering of dependency tables.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pkg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <link rel="icon" type="image/svg+xml" href="/vite.svg" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>{{.ProjectName}}</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>
`

const viteConfig = `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'
import path from 'path'

// https://vitejs.dev/config/
export default defineConfig({
  plugins: [react()],
  resolve: {
    alias: {
      "@": path.resolve(__dirname, "./src"),
    },
  },
})
`

const tsconfigJSON = `{
  "compilerOptions": {
    "target": "ES2020",
    "useDefineForClassFields": true,
    "lib": ["ES2020", "DOM", "DOM.Iterable"],
    "module": "ESNext",
    "skipLibCheck": true,
    "moduleResolution": "bundler",
    "allowImportingTsExtensions": true,
    "resolveJsonModule": true,
    "isolatedModules": true,
    "noEmit": true,
    "jsx": "react-jsx",
    "strict": true,
    "noUnusedLocals": true,
    "noUnusedParameters": true,
    "noFallthroughCasesInSwitch": true,
    "baseUrl": ".",
    "paths": {
      "@/*": ["./src/*"]
    }
  },
  "include": ["src"],
  "references": [{ "path": "./tsconfig.node.json" }]
}
`

const tsconfigNodeJSON = `{
  "compilerOptions": {
    "composite": true,
    "skipLibCheck": true,
    "module": "ESNext",
    "moduleResolution": "bundler",
    "allowSyntheticDefaultImports": true
  },
  "include": ["vite.config.ts"]
}
`

const tailwindConfig = `/** @type {import('tailwindcss').Config} */
export default {
  darkMode: "class",
  content: [
    "./index.html",
    "./src/**/*.{js,ts,jsx,tsx}",
  ],
  theme: {
    extend: {
      colors: {
        border: "hsl(var(--border))",
        input: "hsl(var(--input))",
        ring: "hsl(var(--ring))",
        background: "hsl(var(--background))",
        foreground: "hsl(var(--foreground))",
        primary: {
          DEFAULT: "hsl(var(--primary))",
          foreground: "hsl(var(--primary-foreground))",
        },
        secondary: {
          DEFAULT: "hsl(var(--secondary))",
          foreground: "hsl(var(--secondary-foreground))",
        },
        destructive: {
          DEFAULT: "hsl(var(--destructive))",
          foreground: "hsl(var(--destructive-foreground))",
        },
        muted: {
          DEFAULT: "hsl(var(--muted))",
          foreground: "hsl(var(--muted-foreground))",
        },
        accent: {
          DEFAULT: "hsl(var(--accent))",
          foreground: "hsl(var(--accent-foreground))",
        },
        popover: {
          DEFAULT: "hsl(var(--popover))",
          foreground: "hsl(var(--popover-foreground))",
        },
        card: {
          DEFAULT: "hsl(var(--card))",
          foreground: "hsl(var(--card-foreground))",
        },
      },
      borderRadius: {
        lg: "var(--radius)",
        md: "calc(var(--radius) - 2px)",
        sm: "calc(var(--radius) - 4px)",
      },
    },
  },
  plugins: [],
}
`

const postcssConfig = `export default {
  plugins: {
    tailwindcss: {},
    autoprefixer: {},
  },
}
`

const eslintConfig = `module.exports = {
  root: true,
  env: { browser: true, es2020: true },
  extends: [
    'eslint:recommended',
    'plugin:@typescript-eslint/recommended',
    'plugin:react-hooks/recommended',
  ],
  ignorePatterns: ['dist', '.eslintrc.cjs'],
  parser: '@typescript-eslint/parser',
  plugins: ['react-refresh'],
  rules: {
    'react-refresh/only-export-components': [
      'warn',
      { allowConstantExport: true },
    ],
    '@typescript-eslint/no-unused-vars': 'warn',
    'prefer-const': 'warn',
  },
}
`

const prettierConfig = `{
  "semi": true,
  "trailingComma": "es5",
  "singleQuote": true,
  "printWidth": 80,
  "tabWidth": 2,
  "useTabs": false
}
`

const gitignore = `# Logs
logs
*.log
npm-debug.log*
yarn-debug.log*
yarn-error.log*
pnpm-debug.log*
lerna-debug.log*

node_modules
dist
dist-ssr
*.local

# Editor directories and files
.vscode/*
!.vscode/extensions.json
.idea
.DS_Store
*.suo
*.ntvs*
*.njsproj
*.sln
*.sw?

# Environment variables
.env
.env.local
.env.development.local
.env.test.local
.env.production.local

# Temporary files
.tmp
.temp
`

const envFile = `VITE_APP_NAME={{.ProjectName}}
VITE_API_URL={{.APIURL}}
`

const readme = `# {{.ProjectName}}

A modern React TypeScript web application scaffolded with create-webapp.

## Features

- ⚛️ React 18 with TypeScript
- ⚡ Vite for fast development and building
- 🎨 Tailwind CSS for styling
- 🗂️ Zustand for state management
- 🧭 React Router for navigation
- 🌍 Internationalization with react-i18next
- 📏 ESLint and Prettier for code quality
- 🔍 Zod for schema validation
- 🎯 Path mapping for clean imports

## Getting Started

` + "```" + `bash
# Install dependencies
npm install

# Start development server
npm run dev

# Build for production
npm run build

# Preview production build
npm run preview

# Lint code
npm run lint

# Fix linting issues
npm run lint:fix

# Format code
npm run format
` + "```" + `

## Project Structure

` + "```" + `
src/
├── assets/          # Static assets
│   ├── icons/       # Icon files
│   └── images/      # Image files
├── components/      # Reusable components
│   └── ui/          # UI component library
├── context/         # React contexts
├── hooks/           # Custom hooks
├── i18n/            # Internationalization
│   └── locales/     # Translation files
├── pages/           # Page components
├── router/          # Router configuration
├── services/        # API services
├── stores/          # Zustand stores
├── types/           # TypeScript type definitions
└── utils/           # Utility functions
` + "```" + `

## Available Scripts

- ` + "`npm run dev`" + ` - Start development server
- ` + "`npm run build`" + ` - Build for production
- ` + "`npm run preview`" + ` - Preview production build
- ` + "`npm run lint`" + ` - Run ESLint
- ` + "`npm run lint:fix`" + ` - Fix ESLint issues
- ` + "`npm run format`" + ` - Format code with Prettier

## Environment Variables

Copy ` + "`.env`" + ` and modify as needed:

` + "```" + `env
VITE_APP_NAME={{.ProjectName}}
VITE_API_URL={{.APIURL}}
` + "```" + `
`
