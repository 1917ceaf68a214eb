// Package assets provides highlight themes, page templates and helper
// scripts used by the rendering backends.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── themes/
//	│   └── {name}.yaml          # class path to colour map
//	├── templates/
//	│   └── {name}.html          # page template for the chrome backend
//	└── scripts/
//	    └── {name}.js            # out-of-process highlighter runner
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
