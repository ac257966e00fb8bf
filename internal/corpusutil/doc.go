// Package corpusutil provides utilities for loading and managing the
// integration test corpus of public AsyncAPI example documents.
//
// The corpus covers the official specification examples across several
// protocols (Kafka, MQTT, WebSocket), including request/reply patterns,
// correlation identifiers, and Avro-format payloads.
//
// # Usage
//
// Tests should use the SkipIfNotCached helper to gracefully skip when
// corpus files are not available:
//
//	func TestCorpus_Parse(t *testing.T) {
//	    for _, spec := range corpusutil.GetSpecs() {
//	        t.Run(spec.Name, func(t *testing.T) {
//	            corpusutil.SkipIfNotCached(t, spec)
//	            // ... test implementation
//	        })
//	    }
//	}
//
// # Downloading the Corpus
//
// Run `make corpus-download` to fetch all documents to testdata/corpus/.
// These files are not committed to the repository.
package corpusutil
