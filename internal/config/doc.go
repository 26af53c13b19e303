// Package config loads create-webapp settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults
//  2. create-webapp.yaml in the working directory, or the file given with --config
//  3. CREATE_WEBAPP_* environment variables
//  4. command-line flags that were set explicitly
//
// # Configuration File
//
//	package_manager: pnpm
//	skip_install: false
//	templates_dir: ./my-templates
//	templates_s3: s3://acme-templates/webapp
//	s3_region: eu-west-1
//	metrics_file: ./create-webapp.prom
//
// # Usage
//
//	cfg, err := config.Load(cmd.Flags(), configFile)
//	if err != nil {
//	    return err
//	}
package config
