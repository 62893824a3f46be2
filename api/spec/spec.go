// Package spec embeds the OpenAPI document and the interactive docs page.
package spec

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte

// DocsPage renders the ReDoc viewer against /openapi.yaml.
var DocsPage = []byte(`<!DOCTYPE html>
<html>
  <head>
    <title>Provider Registry API</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
  </head>
  <body>
    <redoc spec-url="/openapi.yaml"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@latest/bundles/redoc.standalone.js"></script>
  </body>
</html>
`)
