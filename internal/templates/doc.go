// Package templates resolves the content of every file in a generated project.
//
// Content comes from one of two places:
//
//   - Bundled assets: files shipped with the generator (embedded in the
//     binary, optionally overlaid by a local directory or an S3 prefix).
//     They are copied byte-for-byte; no substitution is performed.
//   - Generators: a fixed table of functions keyed by relative path that
//     synthesize configuration files from the project metadata.
//
// A bundled asset always wins over a generator for the same path. An entry
// with neither is a configuration error (code E120).
//
// # Usage
//
//	r := templates.NewResolver()
//	content, err := r.Resolve(ctx, "index.html", templates.Metadata{ProjectName: "acme-app"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("index.html", content.Data, 0644)
//
// # Template Variables
//
// Generator templates are rendered with text/template and see:
//
//	{{.ProjectName}}   - Name of the project
//	{{.APIURL}}        - Default backend URL (DefaultAPIURL)
package templates
