package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// attachPrompts registers the reusable analysis prompt templates.
func (r *Registry) attachPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "lead_enrichment",
		Description: "Guidance for analyzing and enriching lead data: validation, company research, scoring, and next actions",
	}, promptHandler("lead_enrichment", leadEnrichmentPrompt))

	server.AddPrompt(&mcp.Prompt{
		Name:        "campaign_analysis",
		Description: "Guidance for evaluating campaign metrics and producing optimization recommendations",
	}, promptHandler("campaign_analysis", campaignAnalysisPrompt))
}

func promptHandler(description, text string) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: description,
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: text},
				},
			},
		}, nil
	}
}

const leadEnrichmentPrompt = `You are a lead enrichment specialist. Your task is to analyze and enrich lead data.

Given a lead with basic information (email, name, company), please:

1. **Validate Contact Information:**
   - Verify email format and domain validity
   - Check if company name is legitimate
   - Identify potential data quality issues

2. **Company Research:**
   - Provide industry classification
   - Estimate company size and revenue range
   - Identify key products or services
   - Note any recent news or funding events

3. **Lead Scoring:**
   - Assign a lead score (1-100) based on:
     * Company size and industry fit
     * Contact title and seniority
     * Email domain quality (corporate vs generic)
     * Data completeness

4. **Enrichment Suggestions:**
   - List missing data points that should be collected
   - Suggest relevant tags or categories
   - Recommend next best actions for outreach

5. **Red Flags:**
   - Identify any suspicious patterns
   - Note potential spam or invalid contacts
   - Highlight data inconsistencies

Please provide your analysis in a structured format that can be used to update the lead record.
`

const campaignAnalysisPrompt = `You are a campaign performance analyst. Your task is to analyze email campaign data.

Given campaign metrics (open rate, click rate, conversions, etc.), please:

1. **Performance Assessment:**
   - Compare metrics against industry benchmarks
   - Identify high-performing and underperforming elements
   - Calculate ROI and cost per acquisition

2. **Trend Analysis:**
   - Analyze performance over time
   - Identify seasonal patterns or anomalies
   - Compare to previous campaigns

3. **Audience Insights:**
   - Segment performance by audience characteristics
   - Identify most engaged segments
   - Note segments requiring re-engagement

4. **Optimization Recommendations:**
   - Suggest subject line improvements
   - Recommend send time optimizations
   - Propose A/B testing opportunities
   - Advise on content and CTA enhancements

5. **Next Steps:**
   - Prioritize action items by impact
   - Set specific, measurable improvement goals
   - Recommend follow-up campaigns or sequences

Please provide actionable insights that can immediately improve campaign performance.
`
