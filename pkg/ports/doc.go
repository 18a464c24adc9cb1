/*
Package ports defines the contract between the importer composition layer and
the concrete training-data sources (hexagonal architecture "ports").

TrainingDataImporter is implemented both by leaf source adapters (for example
the file adapter in pkg/adapters/file) and by the wrappers in pkg/importers,
so arbitrary trees of sources and decorators can be composed behind a single
interface.
*/
package ports
