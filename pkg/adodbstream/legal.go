package adodbstream

// LegalNotice provides license notices for adodbstream and its third-party
// dependencies.
const LegalNotice = `adodbstream

Licensed under the terms of the MIT License. A copy of this license can be
found online at https://opensource.org/licenses/MIT.


================================================================================
adodbstream depends on the following third-party software:
================================================================================

Go, the Go standard library, and the Go sys and text subrepositories.

https://golang.org/
https://github.com/golang/

Used under the terms of the 3-Clause BSD License (Google version).

--------------------------------------------------------------------------------

groupcache

https://github.com/golang/groupcache

Used under the terms of the Apache License, Version 2.0.

--------------------------------------------------------------------------------

errors

https://github.com/pkg/errors

Used under the terms of the 2-Clause BSD License.

--------------------------------------------------------------------------------

Cobra and pflag

https://github.com/spf13/cobra
https://github.com/spf13/pflag

Used under the terms of the Apache License, Version 2.0 (Cobra) and the
3-Clause BSD License (pflag).

--------------------------------------------------------------------------------

humanize

https://github.com/dustin/go-humanize

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

mousetrap

https://github.com/inconshreveable/mousetrap

Used under the terms of the Apache License, Version 2.0.

--------------------------------------------------------------------------------

color, go-colorable, and go-isatty

https://github.com/fatih/color
https://github.com/mattn/go-colorable
https://github.com/mattn/go-isatty

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

basex

https://github.com/eknkc/basex

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

uuid

https://github.com/google/uuid

Used under the terms of the 3-Clause BSD License.

--------------------------------------------------------------------------------

GoDotEnv

https://github.com/joho/godotenv

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

TOML parser for Go

https://github.com/BurntSushi/toml

Used under the terms of the MIT License.

--------------------------------------------------------------------------------

YAML support for Go

https://github.com/go-yaml/yaml

Used under the terms of the Apache License, Version 2.0 and the MIT License.
`
