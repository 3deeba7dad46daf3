package agent

import "fmt"

// systemPrompt is the standing instruction set for the lead agent. It covers
// both strategy questions and actual lead searches.
const systemPrompt = `You are a roofing lead generation expert for Lone Ranger Roofing.

## YOU CAN ANSWER TWO TYPES OF QUERIES:

### 1. STRATEGY QUESTIONS (no leads needed)
If asked "who can help find leads?" or "how do I get referrals?" etc:
- Explain lead generation strategies for roofers
- Key referral sources: home inspectors, realtors, insurance adjusters, property managers
- Storm chasing: monitor weather, contact homeowners in affected areas
- Property data: target older homes (pre-2005) likely needing roof replacement

### 2. LEAD SEARCHES (find actual contacts)
If asked to "find" or "get" leads:

For MIDDLEMEN (inspectors, realtors, contractors):
1. Use find_businesses to find businesses
2. Extract: name, phone, address, website
3. Every lead MUST have a phone number

For STORM/HOMEOWNER leads:
1. get_nws_alerts(state) for affected areas
2. find_open_dataset + query_socrata for properties
3. skip_trace for owner phones

## LEAD DATA REQUIRED:
- name, phone (REQUIRED), type ("middleman"|"homeowner"|"storm")
- address, email, website (if available)

## SCORING:
Phone: 40 | Email: 10 | Address: 10 | Website: 10 | Licensed: 15 | Reviews: 15
Qualified if >= 50

## CRITICAL FOR LEAD SEARCHES:
- Return the requested number of leads
- Every lead needs a phone number
- Use real URLs (not "turn0search1")`

// SystemPrompt exposes the standing instructions so model constructors can
// install them as the prompt prefix.
func SystemPrompt() string {
	return systemPrompt
}

const leadsReportFormat = `Respond with ONLY a JSON object of this shape:
{"leads":[{"name":"","address":"","city":"","state":"","zip":"","phone":"","phone_available":false,"email":"","website":"","type":"middleman|storm|homeowner","score":0,"qualified":false,"reason":"","evidence_urls":[],"storm_context":"","year_built":0,"role":"","notes":""}],"summary":"","total_found":0,"qualified_count":0,"phones_found":0,"data_sources_used":[],"storm_events":[],"skip_trace_configured":false}`

const stormReportFormat = `Respond with ONLY a JSON object of this shape:
{"alerts":[{"event":"","severity":"","urgency":"","headline":"","description":"","affected_zones":[]}],"target_areas":[],"summary":"","recommended_message_type":"storm or homeowner"}`

func stormClause(location string) string {
	if len(location) != 2 {
		return ""
	}
	return fmt.Sprintf(`
First, check for active storm alerts in %s using get_nws_alerts.
Identify storm-affected areas and prioritize those for lead search.
`, location)
}

func homeownerQuery(location string, yearBefore int) string {
	return fmt.Sprintf(`Find homeowner leads in %s - properties likely needing roof work.

1. Use find_open_dataset to locate property data for %s
2. Query for properties built before %d
3. For each property, use skip_trace to get owner contact info
4. If skip_trace is not configured, still include leads with phone_available=false
5. Score based on: property age, storm exposure, data quality

Return structured leads with addresses and any available contact info.`, location, location, yearBefore)
}

func middlemanLocationQuery(location string) string {
	return fmt.Sprintf(`Find and qualify roofing-related professionals (inspectors, realtors, property managers) in %s.

1. Use find_businesses for professionals in the area
2. Verify their licenses
3. Check reviews and online presence
4. Extract phone numbers from business listings
5. Score each 0-100 based on verified facts

Return structured leads with contact info and evidence URLs.`, location)
}

func middlemanRoleQuery(role, location string, radius int) string {
	return fmt.Sprintf(`Find and qualify %ss in %s (within %d miles).

1. Use find_businesses with "%s near %s"
2. Verify licenses
3. Extract phone numbers from business listings (Google, Yelp, websites)
4. Check reviews and online presence
5. Score each 0-100 based on verified facts

Return structured leads with phone numbers and evidence URLs.`, role, location, radius, role, location)
}

func stormLeadsQuery(state string) string {
	return fmt.Sprintf(`Find roofing leads in %s based on storm activity.

FOLLOW THE FULL REASONING CHAIN:

1. STORM CHECK: Use get_nws_alerts("%s") to find active storm alerts
   - Identify areas with hail, wind, severe weather
   - Note the affected counties/zones

2. PROPERTY SEARCH: For storm-affected areas:
   - Use find_open_dataset to locate property data
   - Query for older homes in those areas
   - If no open data, use find_businesses for property info

3. CONTACT INFO: For each property found:
   - Use skip_trace(address, city, state, zip) to get owner phone
   - If skip_trace not configured, mark phone_available=false
   - Still include the lead

4. SCORE & OUTPUT:
   - Score based on storm exposure + property age + phone availability
   - Include storm_context for each lead
   - Return structured leads

Even if some steps fail (no open data, no skip trace), continue with available data.`, state, state)
}

func stormScanQuery(state string) string {
	return fmt.Sprintf(`Scan for active storm alerts in %s.

1. Use get_nws_alerts("%s")
2. Keep only roofing-relevant hazards (hail, wind, tornado, severe thunderstorm, hurricane, tropical storm)
3. Recommend target areas for outreach
4. Recommend a message type: "storm" when active damage is likely, otherwise "homeowner"`, state, state)
}
