// Relay is a conversational chat relay in front of an OpenAI-compatible
// chat-completion endpoint.
//
// It accepts chat turns over HTTP, injects a persona instruction, keeps
// short in-memory conversation histories, calls the upstream model and
// returns a reply cleaned of markdown and excess emoji.
//
// Usage:
//
//	# Start the server using environment configuration only
//	HF_TOKEN=hf_xxx relay run
//
//	# Start with a configuration file
//	relay run --config relay.yaml
//
//	# Send one turn from the terminal
//	relay ask "halo, apa kabar?"
//
//	# Check a configuration file
//	relay config validate --config relay.yaml
package main

func main() {
	Execute()
}
