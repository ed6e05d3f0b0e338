package services

// Fixed reply texts for the deterministic routing branches. These must stay
// byte-for-byte stable: clients and tests compare them exactly.
const (
	EmptyPromptReply = "Please type a question about logging jobs, water quality, or Vermont's Acceptable Management Practices (AMPs)."

	AuthorshipReply = "This assistant was developed by the Vermont forestry extension program. To share feedback or reach the developers, use the feedback form linked at the bottom of the page."

	SoilsRedirectReply = "For soils information, including drainage classes, the USDA Web Soil Survey is the best tool - it can map the soils on your parcel. This assistant covers logging operations and water quality practices."

	OutOfScopeReply = "I'm sorry, I can only answer questions about forestry operations, water quality, and the forest products industry in Vermont."

	ConfigurationErrorReply = "Server configuration error: the model API credential or document store identifier is missing."
)
