// Package catalog supplies the built-in evaluation framework used whenever no
// custom framework has been stored. It exposes the same shape as a stored
// framework (four fixed orientation groups plus the weighted additional
// criteria) and is never mutated in place: edits go through framework save,
// which produces a new revision with a backup of the prior file.
package catalog

import (
	"github.com/sherpa-labs/sherpa/internal/store"
)

const (
	// DefaultFrameworkName identifies the built-in framework.
	DefaultFrameworkName = "Sherpa Framework"

	defaultDescription = "Standard framework for subnet classification"
)

// DefaultFramework returns a fresh copy of the built-in Sherpa framework.
func DefaultFramework() *store.Framework {
	return &store.Framework{
		Name:        DefaultFrameworkName,
		Description: defaultDescription,
		Version:     "1",
		Active:      true,
		Criteria: store.CriteriaGroups{
			Service:      serviceCriteria(),
			Research:     researchCriteria(),
			Intelligence: intelligenceCriteria(),
			Resource:     resourceCriteria(),
		},
		AdditionalCriteria: additionalCriteria(),
	}
}

func serviceCriteria() store.CriterionSet {
	return store.CriterionSet{
		"functioning_product": {
			Question:    "Does it have a functioning product or service?",
			Description: "Evaluate whether the subnet has an actual working product or service that can be used by validators and/or end-users.",
		},
		"immediate_utility": {
			Question:    "Does it offer immediate, tangible utility?",
			Description: "Assess if the subnet provides value that can be utilized right now, rather than just future potential.",
		},
		"revenue_model": {
			Question:    "Is there a clear, current revenue model?",
			Description: "Determine if there is a defined way for the subnet to generate revenue, both for the project and potentially for validators.",
		},
		"apis_integrations": {
			Question:    "Are there ready-to-use APIs or integrations?",
			Description: "Check if the subnet offers well-documented APIs or integrations that developers can easily implement.",
		},
		"validator_monetization": {
			Question:    "Can validators monetize their bandwidth?",
			Description: "Evaluate whether validators running the subnet can earn rewards or monetize their contribution.",
		},
		"usage_metrics": {
			Question:    "Are there measurable usage or adoption metrics?",
			Description: "Determine if the subnet tracks and shares metrics about its usage, adoption, or performance.",
		},
		"implementation_docs": {
			Question:    "Is there documentation geared toward implementation?",
			Description: "Check if comprehensive documentation exists to help with practical implementation and integration.",
		},
		"real_world_use_cases": {
			Question:    "Are there real-world use cases implemented?",
			Description: "Evaluate whether the subnet has demonstrated actual use cases in real-world scenarios.",
		},
	}
}

func researchCriteria() store.CriterionSet {
	return store.CriterionSet{
		"fundamental_problems": {
			Question:    "Are they solving fundamental problems?",
			Description: "Assess if the subnet addresses core technical or scientific challenges in its field.",
		},
		"academic_publications": {
			Question:    "Do they have academic or technical publications?",
			Description: "Check if the team has published research papers, technical documents, or whitepapers about their work.",
		},
		"research_background": {
			Question:    "Does the team have an academic/research background?",
			Description: "Evaluate whether the team members have credentials or experience in academic or research settings.",
		},
		"technical_roadmap": {
			Question:    "Does the roadmap prioritize technical innovation?",
			Description: "Determine if the development roadmap focuses on advancing technical capabilities over commercial features.",
		},
		"academic_collaboration": {
			Question:    "Do they collaborate with academic institutions?",
			Description: "Check if the subnet project works with universities or research institutions.",
		},
		"emerging_tech": {
			Question:    "Are they working on emerging technologies?",
			Description: "Assess if the subnet uses or develops cutting-edge technologies rather than established solutions.",
		},
		"scientific_goals": {
			Question:    "Are their goals more scientific than commercial?",
			Description: "Evaluate if the subnet's primary aims are advancing knowledge or science rather than profit.",
		},
	}
}

func intelligenceCriteria() store.CriterionSet {
	return store.CriterionSet{
		"intelligent_processing": {
			Question:    "Does it perform intelligent data processing?",
			Description: "Determine if the subnet uses AI, machine learning, or other intelligent systems to process data.",
		},
		"specialized_expertise": {
			Question:    "Does it require specialized expertise to build?",
			Description: "Assess whether creating or contributing to the subnet requires advanced technical knowledge or skills.",
		},
		"new_insights": {
			Question:    "Does it generate new insights or intelligence?",
			Description: "Evaluate if the subnet creates new knowledge, predictions, or analysis rather than just processing existing information.",
		},
		"intellectual_barrier": {
			Question:    "Is there a high intellectual barrier to entry?",
			Description: "Check if the subnet's field has significant intellectual challenges that limit competition.",
		},
		"learning_improvement": {
			Question:    "Does it learn and improve over time?",
			Description: "Determine if the subnet incorporates mechanisms to learn from data and improve its performance automatically.",
		},
	}
}

func resourceCriteria() store.CriterionSet {
	return store.CriterionSet{
		"computational_value": {
			Question:    "Does it provide computational value?",
			Description: "Assess if the subnet offers valuable computational resources or processing power to the network.",
		},
		"hardware_requirements": {
			Question:    "Does it have specific hardware requirements?",
			Description: "Check if running the subnet requires specialized hardware such as GPUs, large storage, or other specific resources.",
		},
		"resource_provider": {
			Question:    "Is its primary role being a resource provider?",
			Description: "Determine if the subnet's main function is to provide resources rather than services or intelligence.",
		},
		"geographic_importance": {
			Question:    "Is geographic distribution important?",
			Description: "Evaluate whether the subnet benefits from having validators distributed across different geographic locations.",
		},
		"redundancy_value": {
			Question:    "Does it benefit from redundancy?",
			Description: "Assess if having multiple validators performing the same function improves the subnet's reliability or performance.",
		},
		"resource_returns": {
			Question:    "Does it optimize for resource efficiency returns?",
			Description: "Check if the subnet is designed to maximize the return on resources invested by validators.",
		},
	}
}

func additionalCriteria() store.AdditionalCriterionSet {
	return store.AdditionalCriterionSet{
		"substrate_registration": {
			Criterion: store.Criterion{
				Question:    "Is the subnet registered on Polkadot substrate?",
				Description: "Verify if the subnet has completed formal registration on the Polkadot substrate, which provides additional security and interoperability benefits.",
			},
			Weight: 0.9, Type: store.TypePositive,
		},
		"current_revenue": {
			Criterion: store.Criterion{
				Question:    "Is the subnet currently generating revenue?",
				Description: "Assess whether the subnet is already generating real revenue streams, rather than just having potential future monetization.",
			},
			Weight: 0.7, Type: store.TypePositive,
		},
		"revenue_prospects": {
			Criterion: store.Criterion{
				Question:    "Does the subnet have strong revenue prospects?",
				Description: "Evaluate the potential for future revenue growth based on the subnet's business model and market opportunity.",
			},
			Weight: 0.6, Type: store.TypePositive,
		},
		"team_quantifiable": {
			Criterion: store.Criterion{
				Question:    "Is the team quantifiable and identified?",
				Description: "Determine if the team members are publicly known, with verifiable identities and roles within the project.",
			},
			Weight: 0.5, Type: store.TypePositive,
		},
		"team_track_record": {
			Criterion: store.Criterion{
				Question:    "Does the team have a proven track record?",
				Description: "Evaluate the team's past experience and success in relevant fields, such as blockchain, AI, or the specific domain of the subnet.",
			},
			Weight: 0.5, Type: store.TypePositive,
		},
		"competitive_viability": {
			Criterion: store.Criterion{
				Question:    "Is the subnet competitively viable in its market?",
				Description: "Assess how well the subnet can compete against both blockchain and traditional alternatives in its target market.",
			},
			Weight: 0.7, Type: store.TypePositive,
		},
		"total_addressable_market": {
			Criterion: store.Criterion{
				Question:    "How large is the total addressable market?",
				Description: "Estimate the size of the potential market that the subnet could serve with its products or services.",
			},
			Weight: 0.6, Type: store.TypePositive,
		},
		"roadmap_quality": {
			Criterion: store.Criterion{
				Question:    "Quality and detail of the roadmap",
				Description: "Evaluate how well-defined, realistic, and comprehensive the project's development roadmap is.",
			},
			Weight: 0.4, Type: store.TypePositive,
		},
		"documentation_quality": {
			Criterion: store.Criterion{
				Question:    "Quality and completeness of documentation",
				Description: "Assess the thoroughness, clarity, and usefulness of the subnet's technical and user documentation.",
			},
			Weight: 0.5, Type: store.TypePositive,
		},
		"ui_ux_quality": {
			Criterion: store.Criterion{
				Question:    "Quality of UI/UX and user experience",
				Description: "Evaluate the intuitiveness, design quality, and overall usability of the subnet's interfaces.",
			},
			Weight: 0.4, Type: store.TypePositive,
		},
		"github_activity": {
			Criterion: store.Criterion{
				Question:    "Level of GitHub activity and development",
				Description: "Measure the frequency of code updates, number of contributors, and overall development activity in the project's repositories.",
			},
			Weight: 0.3, Type: store.TypePositive,
		},
		"twitter_activity": {
			Criterion: store.Criterion{
				Question:    "Social media presence and activity",
				Description: "Assess the subnet's engagement with its community through social media platforms like Twitter, Discord, or Telegram.",
			},
			Weight: 0.2, Type: store.TypePositive,
		},
		"dtao_marketing": {
			Criterion: store.Criterion{
				Question:    "DAO/community marketing and promotion",
				Description: "Evaluate how effectively the project's DAO or community contributes to marketing and promoting the subnet.",
			},
			Weight: 0.3, Type: store.TypeBidirectional,
		},
		"third_party_integrations": {
			Criterion: store.Criterion{
				Question:    "Integration with third-party services",
				Description: "Assess the subnet's compatibility and integration with external services, platforms, or applications.",
			},
			Weight: 0.4, Type: store.TypePositive,
		},
		"partnerships": {
			Criterion: store.Criterion{
				Question:    "Strategic partnerships and collaborations",
				Description: "Evaluate the quality and relevance of formal partnerships the subnet has established with other projects or organizations.",
			},
			Weight: 0.4, Type: store.TypePositive,
		},
		"subnet_uniqueness": {
			Criterion: store.Criterion{
				Question:    "Uniqueness compared to other subnets",
				Description: "Determine how differentiated the subnet is from other subnets in the Bittensor ecosystem.",
			},
			Weight: 0.6, Type: store.TypePositive,
		},
		"interoperability": {
			Criterion: store.Criterion{
				Question:    "Interoperability with other blockchain systems",
				Description: "Assess the subnet's ability to connect and interact with other blockchain networks and protocols.",
			},
			Weight: 0.5, Type: store.TypePositive,
		},
		"miner_rewards": {
			Criterion: store.Criterion{
				Question:    "Rewards structure for miners/validators",
				Description: "Evaluate the fairness, sustainability, and incentive alignment of the subnet's reward mechanism for validators.",
			},
			Weight: 0.4, Type: store.TypePositive,
		},
		"subnet_integration": {
			Criterion: store.Criterion{
				Question:    "Integration with the broader Bittensor ecosystem",
				Description: "Assess how well the subnet leverages and contributes to the wider Bittensor network and its capabilities.",
			},
			Weight: 0.7, Type: store.TypePositive,
		},
	}
}

// WeightSnapshot converts a framework's additional criteria into the weight
// snapshot shape stored with a compass at evaluation time.
func WeightSnapshot(set store.AdditionalCriterionSet) map[string]store.AdditionalWeight {
	out := make(map[string]store.AdditionalWeight, len(set))
	for key, ac := range set {
		out[key] = store.AdditionalWeight{Weight: ac.Weight, Type: ac.Type}
	}
	return out
}
