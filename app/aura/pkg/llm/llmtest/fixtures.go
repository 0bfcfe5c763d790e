package llmtest

// AnalysisJSON 满足 schema.AnalysisResult 的完整响应
const AnalysisJSON = `{
  "title": "Darfur Displacement Surge",
  "summary": "Fighting around El Fasher drives new displacement toward Tawila; fuel shortages cripple health and WASH services.",
  "riskLevel": "Critical",
  "methodology": "JIAF-aligned synthesis of partner field reports.",
  "context": "Repeated strikes on health and WASH sites along the El Fasher-Tawila axis.",
  "population": {
    "totalPiN": "15,000",
    "womenAndChildren": "11,200",
    "elderlyAndPWD": "1,900",
    "disaggregationData": {
      "womenPercentage": 52,
      "childrenPercentage": 48.5,
      "menPercentage": 27,
      "pwdPercentage": 15
    }
  },
  "genderLens": {
    "risks": ["GBV risk at unlit latrines"],
    "opportunities": ["Women-led community kitchens"],
    "protectionDirectives": ["Install lighting at WASH points"]
  },
  "drivers": ["Armed conflict", "Fuel shortage"],
  "geographicFocus": ["North Darfur"],
  "sectors": [
    {
      "sector": "WASH",
      "findings": "Latrine-to-user ratio exceeds 1:100 in shelters.",
      "severity": "Severe",
      "peopleInNeed": "15,000",
      "intervention": "Emergency latrine construction and water trucking."
    }
  ],
  "supplyForecasting": [
    {
      "item": "Fuel for generators",
      "category": "Health",
      "quantityNeeded": "20,000",
      "unit": "litres",
      "urgency": "Critical",
      "leadTimeDays": 3,
      "gapAnalysis": "No stock in Tawila."
    }
  ],
  "logistics": [
    {
      "item": "Trauma kits",
      "quantity": "200",
      "urgency": "High",
      "beneficiaries": "3,000"
    }
  ],
  "mobility": [
    {
      "route": "Route 4 south of El Fasher",
      "status": "High Risk",
      "details": "Compromised by checkpoints."
    }
  ],
  "safetySecurity": "Aid workers face checkpoint harassment.",
  "severityAnalysis": "Phase 4 conditions in displacement sites.",
  "copingMechanisms": ["Meal skipping"],
  "responseGaps": ["Trauma care"],
  "recommendations": ["Front-load flexible funding"],
  "timeline": {
    "immediate": "72 hours",
    "preparedness": "2 weeks",
    "turnaround": "10 days"
  }
}`

// DeepDiveJSON 满足 schema.DeepDiveResult 的完整响应
const DeepDiveJSON = `{
  "title": "Cross-Regional Access Outlook",
  "summary": "Operational access remains the top constraint across Sudan and Eastern DRC.",
  "regionalTrends": [
    {"region": "Sudan", "trends": ["Strikes on health facilities"]},
    {"region": "Eastern DRC", "trends": ["Beni-Butembo corridor blocked"]}
  ],
  "crossRegionalAssessment": ["Hybrid threats expanding geographically"],
  "outlook": ["High probability of attacks in E-DRC"],
  "sectorImplications": [{"sector": "Health", "findings": "Trauma supplies depleted"}],
  "fundingImpact": "Cuts to trauma care and winterization.",
  "strategicActions": ["Advocate for predictable corridors"]
}`
