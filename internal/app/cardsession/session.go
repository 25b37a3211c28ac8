// Package cardsession is the interactive flashcard loop of the terminal client.
package cardsession

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/service/flashcard"
)

type songLister interface {
	ListSongs(ctx context.Context) ([]domain.Song, error)
}

type deckBuilder interface {
	NewDeck(ctx context.Context, songID uuid.UUID, settings domain.DisplaySettings) (*flashcard.Deck, error)
}

type marker interface {
	SetUnknown(ctx context.Context, wordID uuid.UUID, flag bool) error
}

type settingsStore interface {
	Load(ctx context.Context) (domain.DisplaySettings, error)
	Update(ctx context.Context, patch domain.SettingsPatch) (domain.DisplaySettings, error)
}

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

const help = `commands:
  songs                     list songs
  open N                    open song N
  n | p | go N              next, previous, jump to card N
  u                         toggle the unknown mark of the current card
  only on|off               show only unknown words
  show meaning|pronunciation|hiragana on|off
  types noun,verb,...       word types to show
  q                         quit`

// Session holds the open song, its deck and the device settings.
type Session struct {
	out      io.Writer
	songs    songLister
	decks    deckBuilder
	marker   marker
	store    settingsStore
	list     []domain.Song
	settings domain.DisplaySettings
	deck     *flashcard.Deck
}

// New creates a Session writing to out.
func New(out io.Writer, songs songLister, decks deckBuilder, m marker, store settingsStore) *Session {
	return &Session{out: out, songs: songs, decks: decks, marker: m, store: store}
}

// Start loads the song list and the saved settings concurrently and prints the songs.
func (s *Session) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.songs.ListSongs(gctx)
		if err != nil {
			return fmt.Errorf("list songs: %w", err)
		}
		s.list = list
		return nil
	})
	g.Go(func() error {
		settings, err := s.store.Load(gctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		s.settings = settings
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.printSongs()
	return nil
}

// Run reads commands from in until EOF or quit.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		if err := s.Exec(ctx, sc.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			var ve *domain.ValidationError
			if errors.As(err, &ve) || errors.Is(err, domain.ErrNotFound) {
				fmt.Fprintf(s.out, "error: %v\n", err)
				continue
			}
			return err
		}
	}
}

// Exec runs one command line. Usage mistakes are reported as *domain.ValidationError.
func (s *Session) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return ErrQuit
	case "h", "help":
		fmt.Fprintln(s.out, help)
		return nil
	case "songs":
		s.printSongs()
		return nil
	case "open":
		return s.open(ctx, args)
	}

	if s.deck == nil {
		if _, ok := settingCommands[cmd]; !ok {
			return domain.NewValidationError("command", "open a song first")
		}
	}

	switch cmd {
	case "n", "next":
		s.deck.Next()
	case "p", "prev":
		s.deck.Prev()
	case "go":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		s.deck.Seek(n - 1)
	case "u":
		return s.toggleUnknown(ctx)
	case "only", "show", "types":
		return s.updateSettings(ctx, cmd, args)
	default:
		return domain.NewValidationError("command", fmt.Sprintf("unknown command %q, try help", cmd))
	}

	s.printCard()
	return nil
}

var settingCommands = map[string]struct{}{"only": {}, "show": {}, "types": {}}

// Deck returns the open deck, nil before a song is opened.
func (s *Session) Deck() *flashcard.Deck { return s.deck }

func (s *Session) open(ctx context.Context, args []string) error {
	n, err := intArg(args)
	if err != nil {
		return err
	}
	if n < 1 || n > len(s.list) {
		return domain.NewValidationError("song", fmt.Sprintf("pick 1..%d", len(s.list)))
	}

	song := s.list[n-1]
	deck, err := s.decks.NewDeck(ctx, song.ID, s.settings)
	if err != nil {
		return err
	}
	s.deck = deck

	fmt.Fprintf(s.out, "%s: %d cards\n", song.Title, deck.Len())
	s.printCard()
	return nil
}

func (s *Session) toggleUnknown(ctx context.Context) error {
	card, ok := s.deck.Current()
	if !ok {
		return domain.NewValidationError("card", "deck is empty")
	}

	flag := !card.Unknown
	if err := s.marker.SetUnknown(ctx, card.WordID, flag); err != nil {
		return err
	}
	s.deck.MarkUnknown(card.WordID, flag)
	s.printCard()
	return nil
}

func (s *Session) updateSettings(ctx context.Context, cmd string, args []string) error {
	patch, err := parsePatch(cmd, args)
	if err != nil {
		return err
	}

	settings, err := s.store.Update(ctx, patch)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.settings = settings

	if s.deck == nil {
		fmt.Fprintln(s.out, "settings saved")
		return nil
	}

	// A settings change rebuilds the deck from the first card.
	deck, err := s.decks.NewDeck(ctx, s.deck.SongID(), settings)
	if err != nil {
		return err
	}
	s.deck = deck
	fmt.Fprintf(s.out, "%d cards\n", deck.Len())
	s.printCard()
	return nil
}

func parsePatch(cmd string, args []string) (domain.SettingsPatch, error) {
	var patch domain.SettingsPatch

	switch cmd {
	case "only":
		on, err := onOff(args, 0)
		if err != nil {
			return patch, err
		}
		patch.ShowOnlyUnknown = &on
	case "show":
		if len(args) != 2 {
			return patch, domain.NewValidationError("show", "usage: show meaning|pronunciation|hiragana on|off")
		}
		on, err := onOff(args, 1)
		if err != nil {
			return patch, err
		}
		switch args[0] {
		case "meaning":
			patch.ShowMeaning = &on
		case "pronunciation":
			patch.ShowPronunciation = &on
		case "hiragana":
			patch.ShowHiragana = &on
		default:
			return patch, domain.NewValidationError("show", fmt.Sprintf("unknown field %q", args[0]))
		}
	case "types":
		if len(args) != 1 {
			return patch, domain.NewValidationError("types", "usage: types noun,verb,...")
		}
		patch.WordTypes = make(map[domain.PartOfSpeech]bool, len(domain.PartsOfSpeech))
		for _, p := range domain.PartsOfSpeech {
			patch.WordTypes[p] = false
		}
		for _, t := range strings.Split(args[0], ",") {
			p := domain.PartOfSpeech(t)
			if !p.IsValid() {
				return patch, domain.NewValidationError("types", fmt.Sprintf("unknown word type %q", t))
			}
			patch.WordTypes[p] = true
		}
	}
	return patch, nil
}

func onOff(args []string, i int) (bool, error) {
	if len(args) <= i {
		return false, domain.NewValidationError("value", "expected on or off")
	}
	switch args[i] {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, domain.NewValidationError("value", fmt.Sprintf("expected on or off, got %q", args[i]))
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, domain.NewValidationError("argument", "expected a number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, domain.NewValidationError("argument", fmt.Sprintf("%q is not a number", args[0]))
	}
	return n, nil
}

func (s *Session) printSongs() {
	if len(s.list) == 0 {
		fmt.Fprintln(s.out, "no songs yet")
		return
	}
	for i, song := range s.list {
		if song.TitleKorean != nil {
			fmt.Fprintf(s.out, "%3d. %s (%s)\n", i+1, song.Title, *song.TitleKorean)
			continue
		}
		fmt.Fprintf(s.out, "%3d. %s\n", i+1, song.Title)
	}
}

func (s *Session) printCard() {
	card, ok := s.deck.Current()
	if !ok {
		fmt.Fprintln(s.out, "no cards match the current settings")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%d/%d] %s", s.deck.Position()+1, s.deck.Len(), card.Original)
	if card.Hiragana != "" {
		fmt.Fprintf(&b, " (%s)", card.Hiragana)
	}
	if card.Pronunciation != "" {
		fmt.Fprintf(&b, "  %s", card.Pronunciation)
	}
	if card.Meaning != "" {
		fmt.Fprintf(&b, "  = %s", card.Meaning)
	}
	fmt.Fprintf(&b, "  [%s]", card.PartOfSpeech)
	if card.Unknown {
		b.WriteString("  *unknown*")
	}
	fmt.Fprintln(s.out, b.String())
}
