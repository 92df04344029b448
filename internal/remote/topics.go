package remote

import (
	"fmt"
	"strings"
)

// Topics builds the bridge's topic names under a prefix.
//
//	topics := remote.Topics{Prefix: "lightman"}
//	topics.Set("Key.000", "exposure")
//	// Returns: "lightman/lights/Key.000/set/exposure"
type Topics struct {
	Prefix string
}

// Set returns the topic external scripts publish attribute values to.
func (t Topics) Set(light, attr string) string {
	return fmt.Sprintf("%s/lights/%s/set/%s", t.Prefix, light, attr)
}

// SetWildcard matches every set topic.
func (t Topics) SetWildcard() string {
	return t.Prefix + "/lights/+/set/+"
}

// Ack returns the topic the bridge reports a command's outcome on.
func (t Topics) Ack(light, attr string) string {
	return fmt.Sprintf("%s/lights/%s/ack/%s", t.Prefix, light, attr)
}

// ParseSet extracts the light and attribute from a set topic.
func (t Topics) ParseSet(topic string) (light, attr string, err error) {
	rest, ok := strings.CutPrefix(topic, t.Prefix+"/lights/")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != "set" || parts[0] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}
	return parts[0], parts[2], nil
}
