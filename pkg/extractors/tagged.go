package extractors

import "igposts/pkg/models"

// ExtractTagged returns the users tagged in raw. The first matching shape
// wins: an existing taggedUsers sequence, an edge connection under
// edge_media_to_tagged_user, then a plain tags sequence. The result is never nil.
func ExtractTagged(raw models.RawPost) []models.TaggedUser {
	if users, ok := taggedSequence(raw["taggedUsers"]); ok {
		return users
	}

	edge := first(raw, "edge_media_to_tagged_user")
	if edge == nil {
		if node, ok := asMap(raw["node"]); ok {
			edge = first(node, "edge_media_to_tagged_user")
		}
	}
	if conn, ok := asMap(edge); ok {
		if _, hasEdges := conn["edges"]; hasEdges {
			return fromEdges(conn["edges"])
		}
	}

	if tags, ok := asSlice(raw["tags"]); ok {
		users := make([]models.TaggedUser, 0, len(tags))
		for _, t := range tags {
			tag, ok := asMap(t)
			if !ok {
				continue
			}
			users = append(users, models.TaggedUser{
				Username:      stringOr(tag["username"]),
				FullName:      stringOr(tag["fullName"]),
				ProfilePicURL: stringOr(tag["profilePicUrl"]),
			})
		}
		return users
	}

	return []models.TaggedUser{}
}

// taggedSequence accepts an already normalized list in either its typed or
// decoded-JSON form. Typed lists are returned as is.
func taggedSequence(v interface{}) ([]models.TaggedUser, bool) {
	switch t := v.(type) {
	case []models.TaggedUser:
		if t == nil {
			return []models.TaggedUser{}, true
		}
		return t, true
	case []interface{}:
		users := make([]models.TaggedUser, 0, len(t))
		for _, item := range t {
			if u, ok := item.(models.TaggedUser); ok {
				users = append(users, u)
				continue
			}
			m, ok := asMap(item)
			if !ok {
				continue
			}
			users = append(users, models.TaggedUser{
				Username:      stringOr(m["username"]),
				FullName:      stringOr(m["fullName"]),
				ProfilePicURL: stringOr(m["profilePicUrl"]),
			})
		}
		return users, true
	}
	return nil, false
}

func fromEdges(v interface{}) []models.TaggedUser {
	edges, _ := asSlice(v)
	users := make([]models.TaggedUser, 0, len(edges))
	for _, e := range edges {
		edge, _ := asMap(e)
		node, _ := asMap(edge["node"])
		user, ok := asMap(node["user"])
		if !ok || len(user) == 0 {
			user = node
		}
		users = append(users, models.TaggedUser{
			Username:      str(user, "username"),
			FullName:      str(user, "full_name", "fullName"),
			ProfilePicURL: str(user, "profile_pic_url", "profilePicUrl"),
		})
	}
	return users
}

// stringOr returns v when it is a string and "" otherwise
func stringOr(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
