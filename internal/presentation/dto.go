package presentation

import (
	"github.com/zjrosen/tresse/internal/hierarchy"
)

// ConversationDTO represents a conversation record for presentation
type ConversationDTO struct {
	ID           string `json:"id"`
	ParentID     string `json:"parent_id,omitempty"`
	Author       string `json:"author"`
	AuthorPubkey string `json:"author_pubkey"`
	LastActivity uint64 `json:"last_activity"`
}

// AgentInfoDTO represents an agent (name, pubkey) pair.
// DisplayName carries the profile-resolved name when one exists.
type AgentInfoDTO struct {
	Name        string `json:"name"`
	Pubkey      string `json:"pubkey"`
	DisplayName string `json:"display_name,omitempty"`
}

// AggregateDTO represents the derived statistics for a conversation subtree
type AggregateDTO struct {
	EffectiveLastActivity   uint64         `json:"effective_last_activity"`
	ActivitySpan            uint64         `json:"activity_span"`
	ParticipatingAgents     []string       `json:"participating_agents"`
	ParticipatingAgentInfos []AgentInfoDTO `json:"participating_agent_infos"`
	AuthorInfo              *AgentInfoDTO  `json:"author_info,omitempty"`
	DelegationAgentInfos    []AgentInfoDTO `json:"delegation_agent_infos"`
	DescendantCount         int            `json:"descendant_count"`
}

// RootDTO pairs a root conversation with its aggregate summary
type RootDTO struct {
	ConversationDTO
	EffectiveLastActivity uint64 `json:"effective_last_activity"`
	DescendantCount       int    `json:"descendant_count"`
	AgentCount            int    `json:"agent_count"`
}

// OutlineEntryDTO is one row of the flattened forest
type OutlineEntryDTO struct {
	ConversationDTO
	Depth int `json:"depth"`
}

// ConversationDetailDTO is a record plus its full aggregate and parent chain
type ConversationDetailDTO struct {
	ConversationDTO
	Ancestors []string     `json:"ancestors,omitempty"`
	Aggregate AggregateDTO `json:"aggregate"`
}

// StatsDTO summarizes a built index
type StatsDTO struct {
	Conversations int `json:"conversations"`
	Roots         int `json:"roots"`
	Orphans       int `json:"orphans"`
	Agents        int `json:"agents"`
	MaxDepth      int `json:"max_depth"`
}

// FromConversation converts a domain conversation to a DTO
func FromConversation(c hierarchy.Conversation) ConversationDTO {
	return ConversationDTO{
		ID:           c.ID,
		ParentID:     c.ParentID,
		Author:       c.Author,
		AuthorPubkey: c.AuthorPubkey,
		LastActivity: c.LastActivity,
	}
}

// FromAgentInfo converts a domain agent info to a DTO
func FromAgentInfo(info hierarchy.AgentInfo) AgentInfoDTO {
	return AgentInfoDTO{
		Name:   info.Name,
		Pubkey: info.Pubkey,
	}
}

// FromAgentInfos converts a slice of domain agent infos to DTOs
func FromAgentInfos(infos []hierarchy.AgentInfo) []AgentInfoDTO {
	dtos := make([]AgentInfoDTO, len(infos))
	for i, info := range infos {
		dtos[i] = FromAgentInfo(info)
	}
	return dtos
}

// FromAggregate converts a domain aggregate to a DTO
func FromAggregate(agg hierarchy.Aggregate) AggregateDTO {
	dto := AggregateDTO{
		EffectiveLastActivity:   agg.EffectiveLastActivity,
		ActivitySpan:            agg.ActivitySpan,
		ParticipatingAgents:     agg.ParticipatingAgents,
		ParticipatingAgentInfos: FromAgentInfos(agg.ParticipatingAgentInfos),
		DelegationAgentInfos:    FromAgentInfos(agg.DelegationAgentInfos),
		DescendantCount:         agg.DescendantCount,
	}
	if agg.AuthorInfo != nil {
		info := FromAgentInfo(*agg.AuthorInfo)
		dto.AuthorInfo = &info
	}
	return dto
}

// FromRoots builds root summaries from the index in sorted order
func FromRoots(idx *hierarchy.Index) []RootDTO {
	roots := idx.SortedRoots()
	dtos := make([]RootDTO, len(roots))
	for i, root := range roots {
		agg := idx.Data(root.ID)
		dtos[i] = RootDTO{
			ConversationDTO:       FromConversation(root),
			EffectiveLastActivity: agg.EffectiveLastActivity,
			DescendantCount:       agg.DescendantCount,
			AgentCount:            len(agg.ParticipatingAgents),
		}
	}
	return dtos
}

// FromOutline converts outline entries to DTOs
func FromOutline(entries []hierarchy.OutlineEntry) []OutlineEntryDTO {
	dtos := make([]OutlineEntryDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = OutlineEntryDTO{
			ConversationDTO: FromConversation(entry.Conversation),
			Depth:           entry.Depth,
		}
	}
	return dtos
}

// FromDetail builds the full detail view for one conversation
func FromDetail(idx *hierarchy.Index, c hierarchy.Conversation) ConversationDetailDTO {
	ancestors := idx.Ancestors(c.ID)
	ids := make([]string, len(ancestors))
	for i, a := range ancestors {
		ids[i] = a.ID
	}
	return ConversationDetailDTO{
		ConversationDTO: FromConversation(c),
		Ancestors:       ids,
		Aggregate:       FromAggregate(idx.Data(c.ID)),
	}
}

// FromStats converts index stats to a DTO
func FromStats(s hierarchy.Stats) StatsDTO {
	return StatsDTO{
		Conversations: s.Conversations,
		Roots:         s.Roots,
		Orphans:       s.Orphans,
		Agents:        s.Agents,
		MaxDepth:      s.MaxDepth,
	}
}
