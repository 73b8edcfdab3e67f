package roast

// Level is a roast intensity.
type Level string

const (
	Mild   Level = "mild"
	Medium Level = "medium"
	Savage Level = "savage"
)

// lineTemplates holds one format string per level for each roast line.
type lineTemplates map[Level]string

var (
	topSenderLine = lineTemplates{
		Mild:   "%s sent the most messages at %d%% of the chat. Quite the social butterfly!",
		Medium: "%s dominated the chat with %d%% of the messages. Maybe let someone else get a word in?",
		Savage: "%s hogged %d%% of the conversation. Ever heard of a hobby outside this chat?",
	}
	bottomSenderLine = lineTemplates{
		Mild:   "%s only contributed %d%% of messages. Lurking is an art form, after all.",
		Medium: "%s clocked in at just %d%% of messages. Do you even know this chat exists?",
		Savage: "%s barely registered at %d%% of messages. Silent member or professional ghoster?",
	}
	peakTimeLine = lineTemplates{
		Mild:   "Most chatting happens around %s on %s. Night owls with a schedule, perhaps?",
		Medium: "Peak chat time is %s on %s. Who needs sleep when you have memes?",
		Savage: "You lot blow up the chat at %s on %s. Congratulations on never respecting bed time.",
	}
	emojiLine = lineTemplates{
		Mild:   "Your favourite emoji appears to be %s, used %d times. Expressive bunch!",
		Medium: "Top emoji award goes to %s – dropped %d times. Maybe diversify your feelings?",
		Savage: "%s shows up %d times. Ever considered using words like a normal human?",
	}
	wordLine = lineTemplates{
		Mild:   "The word '%s' comes up a lot (%d times). Looks like a favourite topic!",
		Medium: "You say '%s' %d times. Is that a cry for help or just laziness?",
		Savage: "'%s' appears %d times. We get it, you have a limited vocabulary.",
	}
)
