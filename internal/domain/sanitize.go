package domain

// PublicProfile is the only shape in which one user's data reaches another.
// Email, phone, credentials and swipe/block lists never appear here, and the
// privacy flags themselves are not echoed back.
type PublicProfile struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Age       *int     `json:"age,omitempty"`
	Gender    string   `json:"gender"`
	Bio       *string  `json:"bio,omitempty"`
	Hobbies   []string `json:"hobbies"`
	Interests []string `json:"interests"`
	Photos    []string `json:"photos"`
}

// PublicProfileOf applies the privacy projection in one place so no call site
// does ad hoc field stripping.
func PublicProfileOf(u *User) PublicProfile {
	p := PublicProfile{
		ID:        u.ID,
		Name:      u.Name,
		Gender:    u.Gender,
		Hobbies:   u.Hobbies,
		Interests: u.Interests,
		Photos:    u.Photos,
	}
	if u.ShowAge {
		age := u.Age()
		p.Age = &age
	}
	if u.ShowBio {
		bio := u.Bio
		p.Bio = &bio
	}
	return p
}

// ChatPeer is the even smaller projection attached to messages and chat
// lists: identity and photos only.
type ChatPeer struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Photos []string `json:"photos"`
}

func ChatPeerOf(u *User) ChatPeer {
	return ChatPeer{ID: u.ID, Name: u.Name, Photos: u.Photos}
}
