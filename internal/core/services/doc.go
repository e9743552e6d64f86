// Package services implements the driving port interfaces: ingest,
// question answering, summarisation and settings loading. Services
// hold the pipeline logic and orchestrate calls to driven ports;
// adapters supply the storage and model backends.
package services
