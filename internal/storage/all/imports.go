// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each backend, which register their
// factories. Importing it makes these kinds available:
//
//   - "postgres" (productseed/internal/storage/postgres)
//   - "sqlite"   (productseed/internal/storage/sqlite)
//   - "mysql"    (productseed/internal/storage/mysql)
package all

import (
	_ "productseed/internal/storage/mysql"
	_ "productseed/internal/storage/postgres"
	_ "productseed/internal/storage/sqlite"
)
